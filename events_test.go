package eggmatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEventTypeString(t *testing.T) {
	want := map[EventType]string{
		EventPickUp:    "pickup",
		EventMismatch:  "mismatch",
		EventMatch:     "match",
		EventComplete:  "complete",
		EventCancel:    "cancel",
		EventReset:     "reset",
		EventType(200): "unknown",
	}
	for typ, s := range want {
		if typ.String() != s {
			t.Errorf("String() = %q, want %q", typ.String(), s)
		}
	}
}

func TestEventRecorder(t *testing.T) {
	var rec EventRecorder
	var sink EventSink = &rec
	sink.EmitEvent(Event{Type: EventPickUp, ItemID: "egg-circle"})
	sink.EmitEvent(Event{Type: EventCancel, ItemID: "egg-circle"})

	if diff := cmp.Diff([]EventType{EventPickUp, EventCancel}, rec.Types()); diff != "" {
		t.Errorf("Types (-want +got):\n%s", diff)
	}
	if rec.Events[1].ItemID != "egg-circle" {
		t.Errorf("ItemID = %q", rec.Events[1].ItemID)
	}
}

func TestCancelEventCarriesItem(t *testing.T) {
	rec := &EventRecorder{}
	b, c := newTestController(t, twoShapeSpec(), Options{Events: rec})
	c.HandleTouch(TouchEvent{Kind: TouchStart, Item: b.Item("egg-square")})
	c.HandleTouch(TouchEvent{Kind: TouchEnd, X: 1, Y: 1})

	cancel := rec.Events[len(rec.Events)-1]
	want := Event{
		Type:      EventCancel,
		SessionID: rec.Events[0].SessionID,
		Modality:  ModalityTouch,
		ItemID:    "egg-square",
		ItemShape: ShapeSquare,
	}
	if diff := cmp.Diff(want, cancel); diff != "" {
		t.Errorf("cancel event (-want +got):\n%s", diff)
	}
}

func TestEnumStrings(t *testing.T) {
	if PlacementHeld.String() != "held" || Placement(9).String() != "unknown" {
		t.Error("Placement.String")
	}
	if ModalityTouch.String() != "touch" || ModalityNone.String() != "none" {
		t.Error("Modality.String")
	}
}
