package models

// Activity modes.
const (
	ModeCareOnly   = "care_only"
	ModeRideOrCare = "ride_or_care"
	ModeRideOnly   = "ride_only"
	ModeDriveOnly  = "drive_only"
)

// RideInScope reports whether an activity mode includes riding.
func RideInScope(mode string) bool {
	return mode == ModeRideOnly || mode == ModeRideOrCare
}

// Weekdays and time blocks in canonical order. The order matters: the flat
// availability lists derived from the schedule follow it.
var (
	WeekDays   = []string{"maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag", "zondag"}
	TimeBlocks = []string{"ochtend", "middag", "avond"}
)

// Option lists rendered by the onboarding wizard.
var (
	TransportOptions   = []string{"auto", "openbaar_vervoer", "fiets", "te_voet"}
	RidingGoals        = []string{"recreatie", "training", "wedstrijden", "therapie", "sociale_contacten"}
	Disciplines        = []string{"dressuur", "springen", "eventing", "western", "buitenritten", "natural_horsemanship"}
	WillingTasks       = []string{"uitrijden", "voeren", "poetsen", "longeren", "stalwerk", "transport"}
	HealthRestrictions = []string{"hoogtevrees", "rugproblemen", "knieproblemen", "allergieën", "medicatie"}
	NoGos              = []string{"drukke_stallen", "avond_afspraken", "weekenden", "slecht_weer", "grote_groepen"}
	PersonalityStyles  = []string{"rustig", "energiek", "geduldig", "assertief", "flexibel", "gestructureerd"}
	HorseTypes         = []string{"paard", "pony"}
	ActivityModes      = []string{ModeCareOnly, ModeRideOrCare, ModeRideOnly, ModeDriveOnly}
)

func weekdayIndex(day string) int {
	for i, d := range WeekDays {
		if d == day {
			return i
		}
	}
	return len(WeekDays)
}

func timeBlockIndex(block string) int {
	for i, b := range TimeBlocks {
		if b == block {
			return i
		}
	}
	return len(TimeBlocks)
}
