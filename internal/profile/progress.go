// Package profile computes completeness and publishability of a rider draft.
// It is the single source of truth for both numbers: UI layers and handlers
// query it instead of re-deriving their own per-step predicates.
package profile

import (
	"strings"
	"time"

	"horsesharing/internal/models"
)

// SectionStatus identifies one incomplete wizard section.
type SectionStatus struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Progress is the evaluator result. Percent counts the ten equally weighted
// sections; Publishable is a separate, stricter gate over specific fields
// and is not implied by Percent == 100.
type Progress struct {
	Percent     int             `json:"percent"`
	Incomplete  []SectionStatus `json:"incompleteSections"`
	Publishable bool            `json:"publishable"`
}

// MinorAge is the age at or below which guardian consent applies.
const MinorAge = 16

type section struct {
	id       string
	title    string
	complete func(*models.RiderProfile) bool
}

var sections = []section{
	{models.SectionBasicInfo, "Basisinformatie", basicInfoComplete},
	{models.SectionAvailability, "Beschikbaarheid", availabilityComplete},
	{models.SectionBudget, "Budget", budgetComplete},
	{models.SectionExperience, "Ervaring & Activiteiten", experienceComplete},
	{models.SectionGoals, "Doelen & Disciplines", goalsComplete},
	{models.SectionSkills, "Vaardigheden", skillsComplete},
	{models.SectionLease, "Lease voorkeuren", leaseComplete},
	{models.SectionTasks, "Taken", tasksComplete},
	{models.SectionPreferences, "Voorkeuren", preferencesComplete},
	{models.SectionMedia, "Media", mediaComplete},
}

// Evaluate scores the draft. Pure, never errors: absent or malformed
// sections count as incomplete, so calling it on every request is safe.
func Evaluate(p *models.RiderProfile) Progress {
	return evaluateAt(p, time.Now())
}

func evaluateAt(p *models.RiderProfile, now time.Time) Progress {
	complete := 0
	incomplete := make([]SectionStatus, 0, len(sections))
	for _, s := range sections {
		if s.complete(p) {
			complete++
		} else {
			incomplete = append(incomplete, SectionStatus{ID: s.id, Title: s.title})
		}
	}
	return Progress{
		Percent:     complete * 100 / len(sections),
		Incomplete:  incomplete,
		Publishable: publishableAt(p, now),
	}
}

// AgeAt computes a calendar age from a "2006-01-02" date of birth, adjusted
// for whether the birthday already passed this year.
func AgeAt(dateOfBirth string, now time.Time) (int, bool) {
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(dateOfBirth))
	if err != nil {
		return 0, false
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func basicInfoComplete(p *models.RiderProfile) bool {
	return present(p.BasicInfo.FirstName) && present(p.BasicInfo.Postcode)
}

func availabilityComplete(p *models.RiderProfile) bool {
	if p.Availability.HasSchedule() {
		return true
	}
	return len(p.Availability.AvailableDays) > 0 && len(p.Availability.AvailableTimeBlocks) > 0
}

func budgetComplete(p *models.RiderProfile) bool {
	return p.Budget.MinEuro > 0 && p.Budget.MaxEuro > 0
}

func experienceComplete(p *models.RiderProfile) bool {
	return p.Experience.Years > 0 ||
		present(p.Experience.ActivityMode) ||
		len(p.Experience.ActivityPreferences) > 0
}

func goalsComplete(p *models.RiderProfile) bool {
	return len(p.Goals.RidingGoals) > 0 || len(p.Goals.DisciplinePreferences) > 0
}

func skillsComplete(p *models.RiderProfile) bool {
	return len(p.Skills.GeneralSkills) > 0
}

func leaseComplete(p *models.RiderProfile) bool {
	return !p.Lease.IsEmpty()
}

func tasksComplete(p *models.RiderProfile) bool {
	return len(p.Tasks.WillingTasks) > 0 || present(p.Tasks.TaskFrequency)
}

func preferencesComplete(p *models.RiderProfile) bool {
	return len(p.Preferences.HealthRestrictions) > 0 ||
		len(p.Preferences.NoGos) > 0 ||
		p.Preferences.MaterialPreferences.Any()
}

func mediaComplete(p *models.RiderProfile) bool {
	return len(p.Media.Photos) > 0 ||
		len(p.Media.Videos) > 0 ||
		present(p.Media.VideoIntroURL)
}

func publishableAt(p *models.RiderProfile, now time.Time) bool {
	return len(publishProblemsAt(p, now)) == 0
}

// PublishProblems lists the reasons a draft may not be published yet, as
// user-facing field messages. Empty means the gate holds.
func PublishProblems(p *models.RiderProfile) []string {
	return publishProblemsAt(p, time.Now())
}

func publishProblemsAt(p *models.RiderProfile, now time.Time) []string {
	var problems []string
	add := func(msg string) { problems = append(problems, msg) }

	if !present(p.BasicInfo.FirstName) {
		add("firstName is required")
	}
	if !present(p.BasicInfo.LastName) {
		add("lastName is required")
	}
	if !present(p.Address.Postcode) || !present(p.Address.HouseNumber) {
		add("address with postcode and house number is required")
	}
	if len(p.Media.Photos) == 0 {
		add("at least one profile photo is required")
	}
	if p.BasicInfo.RiderHeightCM <= 0 {
		add("riderHeightCm must be greater than 0")
	}
	if p.BasicInfo.RiderWeightKG <= 0 {
		add("riderWeightKg must be greater than 0")
	}

	age, hasDOB := AgeAt(p.BasicInfo.DateOfBirth, now)
	if !hasDOB {
		add("dateOfBirth is required")
	} else if age <= MinorAge {
		if !p.BasicInfo.ParentConsent.Known() {
			add("parentConsent is required for minors")
		} else if p.BasicInfo.ParentConsent == models.TriYes {
			if !present(p.BasicInfo.ParentContactName) || !present(p.BasicInfo.ParentContactEmail) {
				add("guardian name and email are required")
			}
		}
	}

	if !availabilityComplete(p) {
		add("availability schedule is required")
	}
	if !budgetComplete(p) {
		add("budget min and max are required")
	}

	dh := p.Preferences.DesiredHorse
	if len(dh.Types) == 0 || !dh.HasHeightOrSize() {
		add("desired horse type and height or size category are required")
	}

	if models.RideInScope(p.Experience.ActivityMode) && !goalsComplete(p) {
		add("a riding goal or discipline preference is required")
	}
	if !tasksComplete(p) {
		add("a willing task or task frequency is required")
	}

	return problems
}
