package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section identifiers. The draft surface accepts edits per section and the
// completeness evaluator scores ten of them (address folds into basic info).
const (
	SectionBasicInfo    = "basic_info"
	SectionAddress      = "address"
	SectionAvailability = "availability"
	SectionBudget       = "budget"
	SectionExperience   = "experience"
	SectionGoals        = "goals"
	SectionSkills       = "skills"
	SectionLease        = "lease"
	SectionTasks        = "tasks"
	SectionPreferences  = "preferences"
	SectionMedia        = "media"
)

// BasicInfo holds identity, contact and physical attributes. The postcode
// here is the quick entry from step one; the structured address lives in
// Address once the lookup ran.
type BasicInfo struct {
	FirstName           string     `bson:"firstName,omitempty" json:"firstName"`
	LastName            string     `bson:"lastName,omitempty" json:"lastName"`
	Phone               string     `bson:"phone,omitempty" json:"phone"`
	DateOfBirth         string     `bson:"dateOfBirth,omitempty" json:"dateOfBirth"`
	Postcode            string     `bson:"postcode,omitempty" json:"postcode"`
	MaxTravelDistanceKM int        `bson:"maxTravelDistanceKm,omitempty" json:"maxTravelDistanceKm"`
	TransportOptions    StringList `bson:"transportOptions" json:"transportOptions"`
	RiderHeightCM       int        `bson:"riderHeightCm,omitempty" json:"riderHeightCm"`
	RiderWeightKG       int        `bson:"riderWeightKg,omitempty" json:"riderWeightKg"`
	RiderBio            string     `bson:"riderBio,omitempty" json:"riderBio"`
	ParentConsent       TriState   `bson:"parentConsent" json:"parentConsent"`
	ParentContactName   string     `bson:"parentContactName,omitempty" json:"parentContactName"`
	ParentContactEmail  string     `bson:"parentContactEmail,omitempty" json:"parentContactEmail"`
}

// Address is the structured postal address. NeedsReview is true whenever the
// last lookup failed or never ran with a full match.
type Address struct {
	CountryCode         string   `bson:"countryCode,omitempty" json:"countryCode"`
	Postcode            string   `bson:"postcode,omitempty" json:"postcode"`
	HouseNumber         string   `bson:"houseNumber,omitempty" json:"houseNumber"`
	HouseNumberAddition string   `bson:"houseNumberAddition,omitempty" json:"houseNumberAddition"`
	Street              string   `bson:"street,omitempty" json:"street"`
	City                string   `bson:"city,omitempty" json:"city"`
	Latitude            *float64 `bson:"latitude,omitempty" json:"latitude"`
	Longitude           *float64 `bson:"longitude,omitempty" json:"longitude"`
	GeocodeConfidence   float64  `bson:"geocodeConfidence,omitempty" json:"geocodeConfidence"`
	NeedsReview         bool     `bson:"needsReview" json:"needsReview"`
}

// Availability keeps the per-day schedule as the single source of truth.
// AvailableDays and AvailableTimeBlocks are the flat union derived from it;
// they are recomputed on every normalize and only read back when a legacy
// document has no schedule at all.
type Availability struct {
	AvailableSchedule   map[string][]string `bson:"availableSchedule,omitempty" json:"availableSchedule"`
	AvailableDays       StringList          `bson:"availableDays" json:"availableDays"`
	AvailableTimeBlocks StringList          `bson:"availableTimeBlocks" json:"availableTimeBlocks"`
	MinDaysPerWeek      int                 `bson:"minDaysPerWeek,omitempty" json:"minDaysPerWeek"`
	SessionDurationMin  int                 `bson:"sessionDurationMin,omitempty" json:"sessionDurationMin"`
	SessionDurationMax  int                 `bson:"sessionDurationMax,omitempty" json:"sessionDurationMax"`
	StartDate           string              `bson:"startDate,omitempty" json:"startDate"`
	ArrangementDuration string              `bson:"arrangementDuration,omitempty" json:"arrangementDuration"`
}

// HasSchedule reports whether at least one day carries at least one block.
func (a Availability) HasSchedule() bool {
	for _, blocks := range a.AvailableSchedule {
		if len(blocks) > 0 {
			return true
		}
	}
	return false
}

type Budget struct {
	MinEuro int `bson:"minEuro,omitempty" json:"minEuro"`
	MaxEuro int `bson:"maxEuro,omitempty" json:"maxEuro"`
}

type ComfortLevels struct {
	Traffic         bool `bson:"traffic" json:"traffic"`
	OutdoorSolo     bool `bson:"outdoorSolo" json:"outdoorSolo"`
	NervousHorses   bool `bson:"nervousHorses" json:"nervousHorses"`
	YoungHorses     bool `bson:"youngHorses" json:"youngHorses"`
	Stallions       bool `bson:"stallions" json:"stallions"`
	TrailRides      bool `bson:"trailRides" json:"trailRides"`
	JumpingHeightCM int  `bson:"jumpingHeightCm,omitempty" json:"jumpingHeightCm"`
}

type Experience struct {
	Years               int           `bson:"years,omitempty" json:"years"`
	ActivityMode        string        `bson:"activityMode,omitempty" json:"activityMode"`
	ActivityPreferences StringList    `bson:"activityPreferences" json:"activityPreferences"`
	Certifications      StringList    `bson:"certifications" json:"certifications"`
	CertificationLevel  string        `bson:"certificationLevel,omitempty" json:"certificationLevel"`
	ComfortLevels       ComfortLevels `bson:"comfortLevels" json:"comfortLevels"`
	// DrivingExperience is only meaningful when ActivityMode is drive_only.
	DrivingExperience string `bson:"drivingExperience,omitempty" json:"drivingExperience"`
}

type Goals struct {
	RidingGoals           StringList `bson:"ridingGoals" json:"ridingGoals"`
	DisciplinePreferences StringList `bson:"disciplinePreferences" json:"disciplinePreferences"`
	PersonalityStyles     StringList `bson:"personalityStyles" json:"personalityStyles"`
}

type Skills struct {
	GeneralSkills StringList `bson:"generalSkills" json:"generalSkills"`
}

type LeaseDuration struct {
	Type   string `bson:"type,omitempty" json:"type"` // doorlopend / vaste_periode, empty = no preference
	Months *int   `bson:"months,omitempty" json:"months"`
}

// Lease preferences are tri-state throughout: nil lists and Unspecified
// booleans mean "no preference", not "no".
type Lease struct {
	WantsLease           TriState      `bson:"wantsLease" json:"wantsLease"`
	LocationPreference   StringList    `bson:"locationPreference,omitempty" json:"locationPreference"`
	ScopePreference      StringList    `bson:"scopePreference,omitempty" json:"scopePreference"`
	Duration             LeaseDuration `bson:"duration" json:"duration"`
	RequiredInclusions   StringList    `bson:"requiredInclusions,omitempty" json:"requiredInclusions"`
	CanTransport         TriState      `bson:"canTransport" json:"canTransport"`
	OwnStablingAvailable TriState      `bson:"ownStablingAvailable" json:"ownStablingAvailable"`
	BudgetMaxEuro        *int          `bson:"budgetMaxEuro,omitempty" json:"budgetMaxEuro"`
}

// IsEmpty reports whether no lease field carries an explicit value.
func (l Lease) IsEmpty() bool {
	return !l.WantsLease.Known() &&
		len(l.LocationPreference) == 0 &&
		len(l.ScopePreference) == 0 &&
		l.Duration.Type == "" && l.Duration.Months == nil &&
		len(l.RequiredInclusions) == 0 &&
		!l.CanTransport.Known() &&
		!l.OwnStablingAvailable.Known() &&
		l.BudgetMaxEuro == nil
}

type Tasks struct {
	WillingTasks  StringList `bson:"willingTasks" json:"willingTasks"`
	TaskFrequency string     `bson:"taskFrequency,omitempty" json:"taskFrequency"`
}

type MaterialPreferences struct {
	BitlessOK        bool `bson:"bitlessOk" json:"bitlessOk"`
	SpursOK          bool `bson:"spursOk" json:"spursOk"`
	AuxiliaryReinsOK bool `bson:"auxiliaryReinsOk" json:"auxiliaryReinsOk"`
	OwnHelmet        bool `bson:"ownHelmet" json:"ownHelmet"`
}

// Any reports whether at least one flag is set.
func (m MaterialPreferences) Any() bool {
	return m.BitlessOK || m.SpursOK || m.AuxiliaryReinsOK || m.OwnHelmet
}

// DesiredHorse describes what the rider is looking for. Height bounds are in
// withers centimeters (schofthoogte); size categories are the coarse
// alternative for riders who do not think in centimeters.
type DesiredHorse struct {
	Types                   StringList `bson:"types" json:"types"`
	WithersHeightMinCM      *int       `bson:"withersHeightMinCm,omitempty" json:"withersHeightMinCm"`
	WithersHeightMaxCM      *int       `bson:"withersHeightMaxCm,omitempty" json:"withersHeightMaxCm"`
	SizeCategories          StringList `bson:"sizeCategories" json:"sizeCategories"`
	Gender                  string     `bson:"gender,omitempty" json:"gender"`
	AgeMin                  *int       `bson:"ageMin,omitempty" json:"ageMin"`
	AgeMax                  *int       `bson:"ageMax,omitempty" json:"ageMax"`
	Breed                   string     `bson:"breed,omitempty" json:"breed"`
	Temperament             StringList `bson:"temperament" json:"temperament"`
	CoatColors              StringList `bson:"coatColors" json:"coatColors"`
	Disciplines             StringList `bson:"disciplines" json:"disciplines"`
	HandSensitivity         string     `bson:"handSensitivity,omitempty" json:"handSensitivity"`
	Forgiveness             string     `bson:"forgiveness,omitempty" json:"forgiveness"`
	RequiredRiderExperience string     `bson:"requiredRiderExperience,omitempty" json:"requiredRiderExperience"`
}

// HasHeightOrSize reports whether a height bound or a size category is set.
func (d DesiredHorse) HasHeightOrSize() bool {
	return d.WithersHeightMinCM != nil || d.WithersHeightMaxCM != nil || len(d.SizeCategories) > 0
}

type Preferences struct {
	MaterialPreferences    MaterialPreferences `bson:"materialPreferences" json:"materialPreferences"`
	HealthRestrictions     StringList          `bson:"healthRestrictions" json:"healthRestrictions"`
	HealthRestrictionOther string              `bson:"healthRestrictionOther,omitempty" json:"healthRestrictionOther"`
	InsuranceCoverage      bool                `bson:"insuranceCoverage" json:"insuranceCoverage"`
	NoGos                  StringList          `bson:"noGos" json:"noGos"`
	RidingStyles           StringList          `bson:"ridingStyles" json:"ridingStyles"`
	DesiredHorse           DesiredHorse        `bson:"desiredHorse" json:"desiredHorse"`
}

// Media keeps ordered URL lists. Element 0 is the cover.
type Media struct {
	Photos        StringList `bson:"photos" json:"photos"`
	Videos        StringList `bson:"videos" json:"videos"`
	VideoIntroURL string     `bson:"videoIntroUrl,omitempty" json:"videoIntroUrl"`
}

// PromoteCoverPhoto moves url to the front of the photo list. A url not in
// the list is left alone.
func (m *Media) PromoteCoverPhoto(url string) {
	m.Photos = promoteFront(m.Photos, url)
}

// PromoteCoverVideo moves url to the front of the video list.
func (m *Media) PromoteCoverVideo(url string) {
	m.Videos = promoteFront(m.Videos, url)
}

func promoteFront(list StringList, value string) StringList {
	if !list.Contains(value) {
		return list
	}
	out := make(StringList, 0, len(list))
	out = append(out, value)
	for _, item := range list {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}

// RiderProfile is the draft document edited by the wizard. CompletionPercent
// and IsPublishable are denormalized evaluator snapshots refreshed on every
// persist, never hand-edited.
type RiderProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	BasicInfo    BasicInfo          `bson:"basicInfo" json:"basicInfo"`
	Address      Address            `bson:"address" json:"address"`
	Availability Availability       `bson:"availability" json:"availability"`
	Budget       Budget             `bson:"budget" json:"budget"`
	Experience   Experience         `bson:"experience" json:"experience"`
	Goals        Goals              `bson:"goals" json:"goals"`
	Skills       Skills             `bson:"skills" json:"skills"`
	Lease        Lease              `bson:"lease" json:"lease"`
	Tasks        Tasks              `bson:"tasks" json:"tasks"`
	Preferences  Preferences        `bson:"preferences" json:"preferences"`
	Media        Media              `bson:"media" json:"media"`

	IsPublished       bool `bson:"isPublished" json:"isPublished"`
	CompletionPercent int  `bson:"completionPercent" json:"completionPercent"`
	IsPublishable     bool `bson:"isPublishable" json:"isPublishable"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NewRiderProfile returns an empty draft with every section at its default.
func NewRiderProfile(userID primitive.ObjectID) RiderProfile {
	p := RiderProfile{UserID: userID}
	p.Normalize()
	return p
}

// ApplySection replaces one named section with the decoded payload and
// re-normalizes the document. Unknown section ids are an error; payloads are
// whole-section state, not field patches.
func (p *RiderProfile) ApplySection(id string, data []byte) error {
	var err error
	switch id {
	case SectionBasicInfo:
		var next BasicInfo
		if err = json.Unmarshal(data, &next); err == nil {
			p.BasicInfo = next
		}
	case SectionAddress:
		var next Address
		if err = json.Unmarshal(data, &next); err == nil {
			p.Address = next
		}
	case SectionAvailability:
		var next Availability
		if err = json.Unmarshal(data, &next); err == nil {
			p.Availability = next
		}
	case SectionBudget:
		var next Budget
		if err = json.Unmarshal(data, &next); err == nil {
			p.Budget = next
		}
	case SectionExperience:
		var next Experience
		if err = json.Unmarshal(data, &next); err == nil {
			p.Experience = next
		}
	case SectionGoals:
		var next Goals
		if err = json.Unmarshal(data, &next); err == nil {
			p.Goals = next
		}
	case SectionSkills:
		var next Skills
		if err = json.Unmarshal(data, &next); err == nil {
			p.Skills = next
		}
	case SectionLease:
		var next Lease
		if err = json.Unmarshal(data, &next); err == nil {
			p.Lease = next
		}
	case SectionTasks:
		var next Tasks
		if err = json.Unmarshal(data, &next); err == nil {
			p.Tasks = next
		}
	case SectionPreferences:
		var next Preferences
		if err = json.Unmarshal(data, &next); err == nil {
			p.Preferences = next
		}
	case SectionMedia:
		var next Media
		if err = json.Unmarshal(data, &next); err == nil {
			p.Media = next
		}
	default:
		return fmt.Errorf("unknown section %q", id)
	}
	if err != nil {
		return err
	}
	p.Normalize()
	return nil
}

// Normalize fills defaults and restores the document invariants: tag sets
// deduplicated, the availability schedule canonical with the flat lists
// derived from it (or rebuilt from them for legacy documents), media lists
// duplicate-free. Normalize never mutates shared state in place; maps and
// slices are rebuilt, so copies of the previous value stay valid.
func (p *RiderProfile) Normalize() {
	p.BasicInfo.TransportOptions = p.BasicInfo.TransportOptions.Dedupe()

	p.normalizeAvailability()

	p.Experience.ActivityPreferences = p.Experience.ActivityPreferences.Dedupe()
	p.Experience.Certifications = p.Experience.Certifications.Dedupe()

	p.Goals.RidingGoals = p.Goals.RidingGoals.Dedupe()
	p.Goals.DisciplinePreferences = p.Goals.DisciplinePreferences.Dedupe()
	p.Goals.PersonalityStyles = p.Goals.PersonalityStyles.Dedupe()

	p.Skills.GeneralSkills = p.Skills.GeneralSkills.Dedupe()

	p.Lease.LocationPreference = p.Lease.LocationPreference.Dedupe()
	p.Lease.ScopePreference = p.Lease.ScopePreference.Dedupe()
	p.Lease.RequiredInclusions = p.Lease.RequiredInclusions.Dedupe()

	p.Tasks.WillingTasks = p.Tasks.WillingTasks.Dedupe()

	p.Preferences.HealthRestrictions = p.Preferences.HealthRestrictions.Dedupe()
	p.Preferences.NoGos = p.Preferences.NoGos.Dedupe()
	p.Preferences.RidingStyles = p.Preferences.RidingStyles.Dedupe()
	p.Preferences.DesiredHorse.Types = p.Preferences.DesiredHorse.Types.Dedupe()
	p.Preferences.DesiredHorse.SizeCategories = p.Preferences.DesiredHorse.SizeCategories.Dedupe()
	p.Preferences.DesiredHorse.Temperament = p.Preferences.DesiredHorse.Temperament.Dedupe()
	p.Preferences.DesiredHorse.CoatColors = p.Preferences.DesiredHorse.CoatColors.Dedupe()
	p.Preferences.DesiredHorse.Disciplines = p.Preferences.DesiredHorse.Disciplines.Dedupe()

	p.Media.Photos = p.Media.Photos.Dedupe()
	p.Media.Videos = p.Media.Videos.Dedupe()
}

func (p *RiderProfile) normalizeAvailability() {
	a := &p.Availability

	// Legacy documents stored only the flat lists; rebuild the schedule from
	// their cross product once, then the schedule rules.
	if !a.HasSchedule() && len(a.AvailableDays) > 0 && len(a.AvailableTimeBlocks) > 0 {
		schedule := make(map[string][]string, len(a.AvailableDays))
		for _, day := range a.AvailableDays.Dedupe() {
			schedule[day] = append([]string(nil), a.AvailableTimeBlocks.Dedupe()...)
		}
		a.AvailableSchedule = schedule
	}

	clean := make(map[string][]string, len(a.AvailableSchedule))
	days := make(StringList, 0, len(a.AvailableSchedule))
	blockSet := make(map[string]struct{})
	for day, blocks := range a.AvailableSchedule {
		deduped := StringList(blocks).Dedupe()
		if len(deduped) == 0 {
			continue
		}
		sort.Slice(deduped, func(i, j int) bool {
			return timeBlockIndex(deduped[i]) < timeBlockIndex(deduped[j])
		})
		clean[day] = deduped
		days = append(days, day)
		for _, b := range deduped {
			blockSet[b] = struct{}{}
		}
	}

	if len(clean) == 0 {
		a.AvailableSchedule = nil
		// Nothing canonical to derive from; leave whatever legacy lists the
		// document carried so older readers keep seeing them.
		a.AvailableDays = a.AvailableDays.Dedupe()
		a.AvailableTimeBlocks = a.AvailableTimeBlocks.Dedupe()
		return
	}

	sort.Slice(days, func(i, j int) bool { return weekdayIndex(days[i]) < weekdayIndex(days[j]) })

	blocks := make(StringList, 0, len(blockSet))
	for b := range blockSet {
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(i, j int) bool { return timeBlockIndex(blocks[i]) < timeBlockIndex(blocks[j]) })

	a.AvailableSchedule = clean
	a.AvailableDays = days
	a.AvailableTimeBlocks = blocks
}
