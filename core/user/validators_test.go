package user

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/playlearnspark/backend/core"
)

func TestPasswordPolicy(t *testing.T) {
	tests := []struct {
		name    string
		nu      NewUser
		wantTag string
	}{
		{
			name:    "too short",
			nu:      NewUser{Name: "Test User", Email: "tu@test.test", Password: "Sh0r!", PasswordConfirm: "Sh0r!"},
			wantTag: pwdMinLenTag,
		},
		{
			name:    "whitespace",
			nu:      NewUser{Name: "Test User", Email: "tu@test.test", Password: "Pass word1!", PasswordConfirm: "Pass word1!"},
			wantTag: pwdNoSpaceTag,
		},
		{
			name:    "all numeric",
			nu:      NewUser{Name: "Test User", Email: "tu@test.test", Password: "84739203657", PasswordConfirm: "84739203657"},
			wantTag: pwdNotAllNumTag,
		},
		{
			name:    "missing complexity",
			nu:      NewUser{Name: "Test User", Email: "tu@test.test", Password: "nocomplexity1", PasswordConfirm: "nocomplexity1"},
			wantTag: pwdComplexityTag,
		},
		{
			name:    "similar to email",
			nu:      NewUser{Name: "Test User", Email: "tu@test.test", Password: "Tu@test.Test1", PasswordConfirm: "Tu@test.Test1"},
			wantTag: pwdAttrSimTag,
		},
		{
			name:    "common password",
			nu:      NewUser{Name: "Test User", Email: "tu@test.test", Password: "P@ssw0rd", PasswordConfirm: "P@ssw0rd"},
			wantTag: pwdNoCommonTag,
		},
		{
			name: "valid password",
			nu:   NewUser{Name: "Test User", Email: "tu@test.test", Password: "g00d#Nuff!", PasswordConfirm: "g00d#Nuff!"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.Validate.Struct(tt.nu)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("Validate.Struct() error = %v, want nil", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate.Struct() error = %v, want ValidationErrors", err)
			}
			for _, fe := range vErrs {
				if fe.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Validate.Struct() errors = %v, want tag %q", vErrs, tt.wantTag)
		})
	}
}

func TestAllRolesValidation(t *testing.T) {
	tests := []struct {
		name    string
		roles   []string
		wantErr bool
	}{
		{name: "no roles", roles: nil},
		{name: "known roles", roles: []string{RoleParent, RoleAdmin}},
		{name: "unknown role", roles: []string{"wizard:"}, wantErr: true},
		{name: "mixed", roles: []string{RoleChild, "yolo"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := NewUser{
				Name:            "Test User",
				Email:           "tu@test.test",
				Password:        "g00d#Nuff!",
				PasswordConfirm: "g00d#Nuff!",
				Roles:           tt.roles,
			}
			err := core.Validate.Struct(nu)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate.Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
