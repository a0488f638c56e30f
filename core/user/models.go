package user

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/playlearnspark/backend/core"
)

// Roles
const (
	// Admin
	RoleAdmin      = "admin:"
	RoleAdminOwner = "admin:owner"

	// Educator
	RoleEducator = "educator:"

	// Parent; the suffix carries the subscription plan
	RoleParent        = "parent:"
	RoleParentPremium = "parent:premium"
	RoleParentFamily  = "parent:family"

	// Child (kids old enough for their own login)
	RoleChild = "child:"
)

var (
	AdminRoles    = []string{RoleAdmin, RoleAdminOwner}
	EducatorRoles = []string{RoleEducator}
	ParentRoles   = []string{RoleParent, RoleParentPremium, RoleParentFamily}
	ChildRoles    = []string{RoleChild}
	AllRoles      = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner: 30,
		RoleAdmin:      21,

		// Educators: 20 - 11
		RoleEducator: 11,

		// Parents: 10 - 5
		RoleParentFamily:  7,
		RoleParentPremium: 6,
		RoleParent:        5,

		// Children: 4 - 1
		RoleChild: 1,
	}

	Roles = []Role{
		{Name: "Child", Value: RoleChild},
		{Name: "Parent", Value: RoleParent},
		{Name: "Parent Premium", Value: RoleParentPremium},
		{Name: "Parent Family", Value: RoleParentFamily},
		{Name: "Educator", Value: RoleEducator},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}
)

func getAllRoles() []string {
	all := make([]string, 0, 7)
	all = append(all, AdminRoles...)
	all = append(all, EducatorRoles...)
	all = append(all, ParentRoles...)
	all = append(all, ChildRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsActive     *bool     `json:"is_active"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) SetActive(active bool) {
	u.IsActive = &active
}

func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.RoleStartsWith(RoleAdmin)
}

func (u *User) IsEducator() bool {
	return u.RoleStartsWith(RoleEducator)
}

func (u *User) IsParent() bool {
	return u.RoleStartsWith(RoleParent)
}

func (u *User) IsChild() bool {
	return u.RoleStartsWith(RoleChild)
}

// Subscription plans. Family covers every learner profile on the account and
// gets the same paid perks as premium.
const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
	SubscriptionFamily  = "family"
)

// Subscription derives the account's plan from its parent role variant.
func (u *User) Subscription() string {
	sub := SubscriptionFree
	for _, role := range u.Roles {
		switch role {
		case RoleParentFamily:
			return SubscriptionFamily
		case RoleParentPremium:
			sub = SubscriptionPremium
		}
	}
	return sub
}

// IsPremium tells whether the user is on a paid plan; admins always are.
func (u *User) IsPremium() bool {
	if u.IsAdmin() {
		return true
	}
	return u.Subscription() != SubscriptionFree
}

// Self-service account types. Parents are activated right away; educator
// accounts stay inactive until an admin approves them.
const (
	AccountParent   = "parent"
	AccountEducator = "educator"
)

// Signup contains information needed to self-register a parent or educator account.
type Signup struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	AccountType     string `json:"account_type" validate:"omitempty,oneof=parent educator"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (su *Signup) Validate(ctx context.Context, svc Service) error {
	su.Name = core.CleanString(su.Name)
	su.Email = core.CleanString(su.Email, true /* lower */)
	su.AccountType = core.CleanString(su.AccountType, true /* lower */)
	if su.AccountType == "" {
		su.AccountType = AccountParent
	}

	if err := core.Validate.Struct(su); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, "", su.Email)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string   `json:"name" validate:"required"`
	Username        string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Password        string   `json:"password" validate:"required"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
}

func (nu *NewUser) Validate(ctx context.Context, svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string   `json:"name"`
	Username        string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string   `json:"email" validate:"omitempty,email"`
	IsActive        *bool    `json:"is_active"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
	Password        string   `json:"password" validate:"omitempty"`
	PasswordConfirm string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(ctx context.Context, origUsr User, svc Service) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	uname := core.CleanString(uu.Username, true /* lower */)
	if uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := core.Validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, uu.Username, uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate() error { return core.Validate.Struct(rp) }

type QueryFilter struct {
	Search      string    `query:"search"`
	Roles       []string  `query:"role"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
