package user

import "testing"

func TestSubscription(t *testing.T) {
	tests := []struct {
		name        string
		roles       []string
		want        string
		wantPremium bool
	}{
		{name: "no roles", roles: nil, want: SubscriptionFree},
		{name: "free parent", roles: []string{RoleParent}, want: SubscriptionFree},
		{name: "premium parent", roles: []string{RoleParentPremium}, want: SubscriptionPremium, wantPremium: true},
		{name: "family parent", roles: []string{RoleParentFamily}, want: SubscriptionFamily, wantPremium: true},
		{name: "family outranks premium", roles: []string{RoleParentPremium, RoleParentFamily}, want: SubscriptionFamily, wantPremium: true},
		{name: "child", roles: []string{RoleChild}, want: SubscriptionFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := User{Roles: tt.roles}
			if got := usr.Subscription(); got != tt.want {
				t.Errorf("Subscription() = %q; want %q", got, tt.want)
			}
			if got := usr.IsPremium(); got != tt.wantPremium {
				t.Errorf("IsPremium() = %v; want %v", got, tt.wantPremium)
			}
		})
	}

	// admins are always premium regardless of plan
	admin := User{Roles: []string{RoleAdmin}}
	if !admin.IsPremium() {
		t.Error("IsPremium() = false for admin; want true")
	}
	if got := admin.Subscription(); got != SubscriptionFree {
		t.Errorf("Subscription() = %q for admin; want %q", got, SubscriptionFree)
	}
}
