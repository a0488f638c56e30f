package feedback

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewFeedbackValidation(t *testing.T) {
	tests := []struct {
		name    string
		nf      NewFeedback
		wantFld string
		wantTag string
	}{
		{
			name: "valid",
			nf:   NewFeedback{Name: "Priya", Rating: 5, Category: CategoryContent, Message: "My kids love the Hindi letters!"},
		},
		{
			name: "valid anonymous defaults category",
			nf:   NewFeedback{Rating: 4, Message: "Works great on our tablet."},
		},
		{
			name:    "message too short",
			nf:      NewFeedback{Rating: 4, Message: "Nice!"},
			wantFld: "message", wantTag: "min",
		},
		{
			name:    "missing rating",
			nf:      NewFeedback{Message: "This is long enough to pass."},
			wantFld: "rating", wantTag: "required",
		},
		{
			name:    "rating out of range",
			nf:      NewFeedback{Rating: 6, Message: "This is long enough to pass."},
			wantFld: "rating", wantTag: "lte",
		},
		{
			name:    "unknown category",
			nf:      NewFeedback{Rating: 3, Category: "rant", Message: "This is long enough to pass."},
			wantFld: "category", wantTag: "oneof",
		},
		{
			name:    "invalid email",
			nf:      NewFeedback{Rating: 3, Email: "not-an-email", Message: "This is long enough to pass."},
			wantFld: "email", wantTag: "email",
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nf.Validate(ctx)
			if tt.wantFld == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if tt.nf.Category == "" {
					t.Error("empty category should default to general")
				}
				return
			}
			fldErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("expected validator.ValidationErrors, got %T (%v)", err, err)
			}
			found := false
			for _, fe := range fldErrs {
				if fe.Field() == tt.wantFld && fe.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %q with tag %q, got %v", tt.wantFld, tt.wantTag, fldErrs)
			}
		})
	}
}
