package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeDerivesFlatAvailability(t *testing.T) {
	p := RiderProfile{}
	p.Availability.AvailableSchedule = map[string][]string{
		"woensdag": {"avond", "ochtend", "ochtend"},
		"maandag":  {"middag"},
		"vrijdag":  {},
	}
	p.Normalize()

	wantSchedule := map[string][]string{
		"maandag":  {"middag"},
		"woensdag": {"ochtend", "avond"},
	}
	if !reflect.DeepEqual(map[string][]string(p.Availability.AvailableSchedule), wantSchedule) {
		t.Fatalf("schedule = %v, want %v", p.Availability.AvailableSchedule, wantSchedule)
	}
	if got, want := []string(p.Availability.AvailableDays), []string{"maandag", "woensdag"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("days = %v, want %v", got, want)
	}
	if got, want := []string(p.Availability.AvailableTimeBlocks), []string{"ochtend", "middag", "avond"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("blocks = %v, want %v", got, want)
	}
}

func TestNormalizeRebuildsScheduleFromLegacyLists(t *testing.T) {
	p := RiderProfile{}
	p.Availability.AvailableDays = StringList{"zaterdag", "dinsdag"}
	p.Availability.AvailableTimeBlocks = StringList{"ochtend"}
	p.Normalize()

	want := map[string][]string{
		"dinsdag":  {"ochtend"},
		"zaterdag": {"ochtend"},
	}
	if !reflect.DeepEqual(p.Availability.AvailableSchedule, want) {
		t.Fatalf("rebuilt schedule = %v, want %v", p.Availability.AvailableSchedule, want)
	}
	if got, want := []string(p.Availability.AvailableDays), []string{"dinsdag", "zaterdag"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("days = %v, want %v", got, want)
	}
}

func TestNormalizeDoesNotMutatePreviousSnapshot(t *testing.T) {
	p := RiderProfile{}
	p.Availability.AvailableSchedule = map[string][]string{"maandag": {"ochtend"}}
	p.Normalize()
	snapshot := p

	p.Availability.AvailableSchedule = map[string][]string{
		"maandag": {"ochtend"},
		"zondag":  {"avond"},
	}
	p.Normalize()

	if len(snapshot.Availability.AvailableSchedule) != 1 {
		t.Fatalf("earlier snapshot changed: %v", snapshot.Availability.AvailableSchedule)
	}
	if len(snapshot.Availability.AvailableDays) != 1 {
		t.Fatalf("earlier snapshot days changed: %v", snapshot.Availability.AvailableDays)
	}
}

func TestApplySectionReplacesWholeSection(t *testing.T) {
	p := NewRiderProfile(primitive.NilObjectID)
	p.Budget = Budget{MinEuro: 50, MaxEuro: 150}

	if err := p.ApplySection(SectionBudget, []byte(`{"maxEuro":300}`)); err != nil {
		t.Fatalf("apply budget: %v", err)
	}
	if p.Budget.MinEuro != 0 || p.Budget.MaxEuro != 300 {
		t.Fatalf("budget = %+v, want whole-section replacement", p.Budget)
	}
}

func TestApplySectionNormalizes(t *testing.T) {
	p := NewRiderProfile(primitive.NilObjectID)
	payload := []byte(`{"willingTasks":[" voeren","voeren","poetsen"]}`)
	if err := p.ApplySection(SectionTasks, payload); err != nil {
		t.Fatalf("apply tasks: %v", err)
	}
	if got, want := []string(p.Tasks.WillingTasks), []string{"voeren", "poetsen"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("willingTasks = %v, want %v", got, want)
	}
}

func TestApplySectionRejectsUnknownID(t *testing.T) {
	p := NewRiderProfile(primitive.NilObjectID)
	if err := p.ApplySection("payment", []byte(`{}`)); err == nil {
		t.Fatal("expected error for unknown section id")
	}
}

func TestApplySectionRejectsMalformedPayload(t *testing.T) {
	p := NewRiderProfile(primitive.NilObjectID)
	p.Goals.RidingGoals = StringList{"recreatief"}
	if err := p.ApplySection(SectionGoals, []byte(`{"ridingGoals":`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if got := []string(p.Goals.RidingGoals); !reflect.DeepEqual(got, []string{"recreatief"}) {
		t.Fatalf("failed apply must not touch the section, got %v", got)
	}
}

func TestStringListToggle(t *testing.T) {
	var list StringList
	list = list.Toggle("voeren")
	list = list.Toggle("poetsen")
	if got, want := []string(list), []string{"voeren", "poetsen"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("list = %v, want %v", got, want)
	}

	list = list.Toggle("voeren")
	if got, want := []string(list), []string{"poetsen"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("toggle off: list = %v, want %v", got, want)
	}
}

func TestPromoteCoverPhoto(t *testing.T) {
	m := Media{Photos: StringList{"a.jpg", "b.jpg", "c.jpg"}}
	m.PromoteCoverPhoto("c.jpg")
	if got, want := []string(m.Photos), []string{"c.jpg", "a.jpg", "b.jpg"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("photos = %v, want %v", got, want)
	}

	m.PromoteCoverPhoto("missing.jpg")
	if got, want := []string(m.Photos), []string{"c.jpg", "a.jpg", "b.jpg"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unknown url must not reorder, got %v", got)
	}
}

func TestTriStateJSONRoundTrip(t *testing.T) {
	type doc struct {
		Consent TriState `json:"consent"`
	}

	cases := []struct {
		raw  string
		want TriState
	}{
		{`{"consent":null}`, TriUnspecified},
		{`{"consent":true}`, TriYes},
		{`{"consent":false}`, TriNo},
		{`{}`, TriUnspecified},
	}
	for _, tc := range cases {
		var d doc
		if err := json.Unmarshal([]byte(tc.raw), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if d.Consent != tc.want {
			t.Fatalf("unmarshal %s = %v, want %v", tc.raw, d.Consent, tc.want)
		}
	}

	out, err := json.Marshal(doc{Consent: TriYes})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"consent":true}` {
		t.Fatalf("marshal TriYes = %s", out)
	}
	out, err = json.Marshal(doc{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"consent":null}` {
		t.Fatalf("marshal unspecified = %s", out)
	}
}

func TestLeaseIsEmpty(t *testing.T) {
	var l Lease
	if !l.IsEmpty() {
		t.Fatal("zero lease should be empty")
	}
	l.CanTransport = TriNo
	if l.IsEmpty() {
		t.Fatal("explicit no is still a stated preference")
	}
}
