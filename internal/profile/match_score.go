package profile

import "horsesharing/internal/models"

// MatchScore weighs how much of the draft contributes to better matching,
// 0-100. Unlike the completeness percent the sections are weighted unevenly
// and the goals weight only counts when riding is in scope, so a care-only
// rider is not punished for skipping disciplines.
//
// Weights: basics 18, availability 15, budget 12, experience 15, desired
// horse 12, goals 10, tasks 6, skills 6, preferences 3, extra media 3.
func MatchScore(p *models.RiderProfile) int {
	score := 0

	hasName := present(p.BasicInfo.FirstName)
	hasAddress := present(p.Address.Postcode) && present(p.Address.HouseNumber)
	hasAvatar := len(p.Media.Photos) >= 1
	if hasName && hasAddress && hasAvatar {
		score += 18
	}

	if availabilityComplete(p) {
		score += 15
	}

	if p.Budget.MinEuro > 0 && p.Budget.MaxEuro > 0 && p.Budget.MinEuro <= p.Budget.MaxEuro {
		score += 12
	}

	drivingOK := p.Experience.ActivityMode != models.ModeDriveOnly || present(p.Experience.DrivingExperience)
	if drivingOK && experienceComplete(p) {
		score += 15
	}

	dh := p.Preferences.DesiredHorse
	if len(dh.Types) > 0 || dh.WithersHeightMinCM != nil || dh.WithersHeightMaxCM != nil {
		score += 12
	}

	if models.RideInScope(p.Experience.ActivityMode) && goalsComplete(p) {
		score += 10
	}

	if tasksComplete(p) {
		score += 6
	}
	if skillsComplete(p) {
		score += 6
	}
	if preferencesComplete(p) {
		score += 3
	}

	extraPhotos := len(p.Media.Photos) > 1
	if extraPhotos || len(p.Media.Videos) > 0 || present(p.Media.VideoIntroURL) {
		score += 3
	}

	if score > 100 {
		score = 100
	}
	return score
}
