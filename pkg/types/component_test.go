package types

import (
	"errors"
	"testing"
)

func TestComponentValidate(t *testing.T) {
	tests := []struct {
		name    string
		comp    Component
		wantErr error
	}{
		{"valid", Component{ID: "app-layout", Name: "AppLayout"}, nil},
		{"uppercase id", Component{ID: "Button", Name: "Button"}, ErrInvalidID},
		{"empty id", Component{Name: "Button"}, ErrInvalidID},
		{"empty name", Component{ID: "button"}, ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comp.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestComponentHasTag(t *testing.T) {
	c := Component{ID: "button", Name: "Button", Tags: []string{"input", "action"}}

	if !c.HasTag("action") {
		t.Error("expected tag action to be present")
	}
	if c.HasTag("Action") {
		t.Error("tag matching must be exact")
	}
}

func TestExampleValidate(t *testing.T) {
	ok := Example{ID: "button-primary_action", Component: "button"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := Example{ID: "x", Component: "Not Valid"}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidComponentRef) {
		t.Errorf("Validate() = %v, want ErrInvalidComponentRef", err)
	}
}
