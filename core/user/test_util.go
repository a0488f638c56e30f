package user

import (
	"context"

	"github.com/playlearnspark/backend/core"
)

type serviceMock struct {
	service
}

func NewServiceMock(repo Repository, mailSvc core.EmailService) Service {
	return &serviceMock{
		service: service{
			repo:    repo,
			mailSvc: mailSvc,
		},
	}
}

func (svc *serviceMock) Register(ctx context.Context, su Signup) (User, error) {
	usr, err := svc.create(ctx, signupNewUser(su), su.AccountType != AccountEducator)
	if err != nil {
		return User{}, err
	}
	// run synchronously
	svc.sendWelcomeMail(usr)
	return usr, nil
}

func (svc *serviceMock) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	// run synchronously
	svc.sendPasswordResetMail(usr)
	return nil
}
