package profile

import (
	"testing"
	"time"

	"horsesharing/internal/models"
)

var evalNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// publishableDraft is the minimum draft that passes the publish gate: adult
// rider, full name and address, avatar, body measurements, one scheduled
// block, budget, desired horse with a height bound, care-only mode and one
// willing task.
func publishableDraft() models.RiderProfile {
	minHeight := 150
	p := models.RiderProfile{}
	p.Normalize()
	p.BasicInfo.FirstName = "Ana"
	p.BasicInfo.LastName = "Jansen"
	p.BasicInfo.Postcode = "1234AB"
	p.BasicInfo.DateOfBirth = "1996-05-10" // age 30 at evalNow
	p.BasicInfo.RiderHeightCM = 170
	p.BasicInfo.RiderWeightKG = 60
	p.Address.Postcode = "1234AB"
	p.Address.HouseNumber = "12"
	p.Availability.AvailableSchedule = map[string][]string{"maandag": {"ochtend"}}
	p.Budget.MinEuro = 100
	p.Budget.MaxEuro = 200
	p.Experience.ActivityMode = models.ModeCareOnly
	p.Tasks.WillingTasks = models.StringList{"voeren"}
	p.Preferences.DesiredHorse.Types = models.StringList{"paard"}
	p.Preferences.DesiredHorse.WithersHeightMinCM = &minHeight
	p.Media.Photos = models.StringList{"https://cdn.example/ana.jpg"}
	p.Normalize()
	return p
}

func TestEvaluateEmptyDraft(t *testing.T) {
	p := models.RiderProfile{}
	p.Normalize()
	got := evaluateAt(&p, evalNow)
	if got.Percent != 0 {
		t.Fatalf("empty draft percent = %d, want 0", got.Percent)
	}
	if got.Publishable {
		t.Fatal("empty draft must not be publishable")
	}
	if len(got.Incomplete) != 10 {
		t.Fatalf("empty draft incomplete sections = %d, want 10", len(got.Incomplete))
	}
}

func TestEvaluateAllSectionsComplete(t *testing.T) {
	p := publishableDraft()
	p.Goals.RidingGoals = models.StringList{"recreatie"}
	p.Skills.GeneralSkills = models.StringList{"longeren"}
	p.Lease.WantsLease = models.TriNo
	p.Preferences.NoGos = models.StringList{"drukke_stallen"}

	got := evaluateAt(&p, evalNow)
	if got.Percent != 100 {
		t.Fatalf("percent = %d, want 100 (incomplete: %v)", got.Percent, got.Incomplete)
	}
	if len(got.Incomplete) != 0 {
		t.Fatalf("expected no incomplete sections, got %v", got.Incomplete)
	}
}

func TestPercentMonotonicPerSection(t *testing.T) {
	p := models.RiderProfile{}
	p.Normalize()

	steps := []func(*models.RiderProfile){
		func(p *models.RiderProfile) { p.BasicInfo.FirstName = "Ana"; p.BasicInfo.Postcode = "1234AB" },
		func(p *models.RiderProfile) {
			p.Availability.AvailableSchedule = map[string][]string{"dinsdag": {"avond"}}
		},
		func(p *models.RiderProfile) { p.Budget.MinEuro = 100; p.Budget.MaxEuro = 200 },
		func(p *models.RiderProfile) { p.Experience.Years = 3 },
		func(p *models.RiderProfile) { p.Goals.DisciplinePreferences = models.StringList{"dressuur"} },
		func(p *models.RiderProfile) { p.Skills.GeneralSkills = models.StringList{"poetsen"} },
		func(p *models.RiderProfile) { p.Lease.CanTransport = models.TriYes },
		func(p *models.RiderProfile) { p.Tasks.TaskFrequency = "wekelijks" },
		func(p *models.RiderProfile) { p.Preferences.MaterialPreferences.OwnHelmet = true },
		func(p *models.RiderProfile) { p.Media.VideoIntroURL = "https://cdn.example/v.mp4" },
	}

	last := evaluateAt(&p, evalNow).Percent
	if last != 0 {
		t.Fatalf("baseline percent = %d, want 0", last)
	}
	for i, step := range steps {
		step(&p)
		got := evaluateAt(&p, evalNow).Percent
		if got < last {
			t.Fatalf("percent dropped after step %d: %d -> %d", i+1, last, got)
		}
		if got != (i+1)*10 {
			t.Fatalf("percent after step %d = %d, want %d", i+1, got, (i+1)*10)
		}
		last = got
	}
}

func TestPublishableExampleProfile(t *testing.T) {
	p := publishableDraft()
	got := evaluateAt(&p, evalNow)
	if !got.Publishable {
		t.Fatalf("expected publishable, problems: %v", publishProblemsAt(&p, evalNow))
	}
	// The gate is about specific fields, not raw completeness: this draft has
	// empty goals, skills, lease and preferences sections.
	if got.Percent == 100 {
		t.Fatalf("expected percent below 100, got %d", got.Percent)
	}
	if got.Percent != 60 {
		t.Fatalf("percent = %d, want 60", got.Percent)
	}
}

func TestPublishableMinorNeedsConsent(t *testing.T) {
	p := publishableDraft()
	p.BasicInfo.DateOfBirth = "2012-03-01" // age 14 at evalNow

	if publishableAt(&p, evalNow) {
		t.Fatal("minor without consent decision must not be publishable")
	}

	p.BasicInfo.ParentConsent = models.TriYes
	if publishableAt(&p, evalNow) {
		t.Fatal("consenting minor without guardian contact must not be publishable")
	}

	p.BasicInfo.ParentContactName = "J. Jansen"
	p.BasicInfo.ParentContactEmail = "j.jansen@example.org"
	if !publishableAt(&p, evalNow) {
		t.Fatalf("expected publishable, problems: %v", publishProblemsAt(&p, evalNow))
	}

	// An explicit "no consent" answer also satisfies the decision requirement.
	p.BasicInfo.ParentConsent = models.TriNo
	p.BasicInfo.ParentContactName = ""
	p.BasicInfo.ParentContactEmail = ""
	if !publishableAt(&p, evalNow) {
		t.Fatalf("expected publishable with consent=no, problems: %v", publishProblemsAt(&p, evalNow))
	}
}

func TestPublishableRideModeRequiresGoals(t *testing.T) {
	p := publishableDraft()
	p.Experience.ActivityMode = models.ModeRideOrCare
	if publishableAt(&p, evalNow) {
		t.Fatal("ride mode without goals or disciplines must not be publishable")
	}
	p.Goals.RidingGoals = models.StringList{"recreatie"}
	if !publishableAt(&p, evalNow) {
		t.Fatalf("expected publishable, problems: %v", publishProblemsAt(&p, evalNow))
	}
}

func TestPublishableDesiredHorseRequiresHeightOrSize(t *testing.T) {
	p := publishableDraft()
	p.Preferences.DesiredHorse.WithersHeightMinCM = nil
	if publishableAt(&p, evalNow) {
		t.Fatal("desired horse without height or size category must not be publishable")
	}
	p.Preferences.DesiredHorse.SizeCategories = models.StringList{"D-pony"}
	if !publishableAt(&p, evalNow) {
		t.Fatalf("expected publishable, problems: %v", publishProblemsAt(&p, evalNow))
	}
}

func TestAgeAtBirthdayBoundary(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	if age, ok := AgeAt("2000-06-15", now); !ok || age != 26 {
		t.Fatalf("birthday today: age = %d ok = %v, want 26 true", age, ok)
	}
	if age, ok := AgeAt("2000-06-16", now); !ok || age != 25 {
		t.Fatalf("birthday tomorrow: age = %d ok = %v, want 25 true", age, ok)
	}
	if _, ok := AgeAt("not-a-date", now); ok {
		t.Fatal("invalid date of birth must not produce an age")
	}
	if _, ok := AgeAt("", now); ok {
		t.Fatal("empty date of birth must not produce an age")
	}
}

func TestPublishProblemsNamesMissingFields(t *testing.T) {
	p := models.RiderProfile{}
	p.Normalize()
	problems := publishProblemsAt(&p, evalNow)
	if len(problems) == 0 {
		t.Fatal("empty draft should have publish problems")
	}
	found := false
	for _, msg := range problems {
		if msg == "firstName is required" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected firstName problem, got %v", problems)
	}
}

func TestMatchScoreWeighting(t *testing.T) {
	p := models.RiderProfile{}
	p.Normalize()
	if got := MatchScore(&p); got != 0 {
		t.Fatalf("empty draft match score = %d, want 0", got)
	}

	p = publishableDraft()
	// basics 18 + availability 15 + budget 12 + experience 15 + desired horse
	// 12 + tasks 6 = 78; goals weight stays out for care-only riders.
	if got := MatchScore(&p); got != 78 {
		t.Fatalf("match score = %d, want 78", got)
	}

	p.Experience.ActivityMode = models.ModeRideOrCare
	p.Goals.RidingGoals = models.StringList{"recreatie"}
	if got := MatchScore(&p); got != 88 {
		t.Fatalf("match score with ride goals = %d, want 88", got)
	}

	// A drive-only rider without driving experience loses the experience weight.
	p = publishableDraft()
	p.Experience.ActivityMode = models.ModeDriveOnly
	if got := MatchScore(&p); got != 63 {
		t.Fatalf("drive-only without driving experience = %d, want 63", got)
	}
	p.Experience.DrivingExperience = "gevorderd"
	if got := MatchScore(&p); got != 78 {
		t.Fatalf("drive-only with driving experience = %d, want 78", got)
	}
}
