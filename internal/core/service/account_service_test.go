package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
)

func registeredUser(t *testing.T, f *authFixture, email, phone string) (domain.Actor, string) {
	t.Helper()
	session, err := f.svc.RegisterUser(context.Background(), userReg(email, phone, "pass123"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	claims, err := f.codec.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	actor := domain.ActorFromUser(session.User)
	actor.Claims = claims
	return actor, session.Token
}

func newUserAccounts(f *authFixture) *UserAccountService {
	return NewUserAccountService(f.users, NewBcryptHasher(4), f.codec, f.revoked, time.Hour, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestUserAccountService_UpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	svc := newUserAccounts(f)
	ctx := context.Background()

	alice, _ := registeredUser(t, f, "alice@example.com", "9000000011")
	registeredUser(t, f, "bob@example.com", "9000000012")

	t.Run("own email can be resubmitted", func(t *testing.T) {
		u, err := svc.UpdateProfile(ctx, alice, domain.UserUpdate{Email: strPtr("ALICE@example.com"), FirstName: strPtr("Alicia")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.FirstName != "Alicia" || u.Email != "alice@example.com" {
			t.Fatalf("unexpected user: %+v", u)
		}
	})

	t.Run("taken phone is rejected", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice, domain.UserUpdate{Phone: strPtr("9000000012")})
		if !errors.Is(err, domain.ErrDuplicateIdentity) {
			t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
		}
	})

	t.Run("empty update is invalid", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, alice, domain.UserUpdate{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("providers cannot use user profile", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, domain.Actor{ID: "p1", Kind: domain.KindProvider}, domain.UserUpdate{FirstName: strPtr("Xx")})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestUserAccountService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	svc := newUserAccounts(f)
	ctx := context.Background()

	actor, _ := registeredUser(t, f, "carol@example.com", "9000000013")

	if _, err := svc.ChangePassword(ctx, actor, "wrong1", "newpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.ChangePassword(ctx, actor, "pass123", "pass123"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unchanged password, got %v", err)
	}

	fresh, err := svc.ChangePassword(ctx, actor, "pass123", "newpass1")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	oldRevoked, _ := f.revoked.IsRevoked(ctx, actor.Claims)
	if !oldRevoked {
		t.Fatalf("the token used for the change must be revoked")
	}
	if _, err := f.svc.LoginUser(ctx, "carol@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	freshClaims, err := f.codec.Verify(fresh)
	if err != nil {
		t.Fatalf("fresh token does not verify: %v", err)
	}
	if revoked, _ := f.revoked.IsRevoked(ctx, freshClaims); revoked {
		t.Fatalf("fresh token must survive the revocation cutoff")
	}
}

func TestUserAccountService_ChangePassword_RevokesSameSecondSessions(t *testing.T) {
	f := newAuthFixture(t)
	svc := newUserAccounts(f)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	f.codec.now = func() time.Time { return base.Add(100 * time.Millisecond) }

	actor, _ := registeredUser(t, f, "frank@example.com", "9000000016")
	other, err := f.svc.LoginUser(ctx, "frank@example.com", "pass123")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	otherClaims, err := f.codec.Verify(other.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	changedAt := base.Add(400 * time.Millisecond)
	svc.now = func() time.Time { return changedAt }
	f.codec.now = func() time.Time { return changedAt }

	fresh, err := svc.ChangePassword(ctx, actor, "pass123", "newpass1")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if revoked, _ := f.revoked.IsRevoked(ctx, otherClaims); !revoked {
		t.Fatalf("a session opened earlier in the same second must be revoked")
	}
	freshClaims, err := f.codec.Verify(fresh)
	if err != nil {
		t.Fatalf("verify fresh: %v", err)
	}
	if revoked, _ := f.revoked.IsRevoked(ctx, freshClaims); revoked {
		t.Fatalf("token issued at the change instant must survive")
	}
}

func TestUserAccountService_ChangePassword_TooLong(t *testing.T) {
	f := newAuthFixture(t)
	svc := newUserAccounts(f)

	actor, _ := registeredUser(t, f, "gina@example.com", "9000000017")
	_, err := svc.ChangePassword(context.Background(), actor, "pass123", strings.Repeat("z", 80))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserAccountService_DeleteAccount(t *testing.T) {
	f := newAuthFixture(t)
	svc := newUserAccounts(f)
	ctx := context.Background()

	actor, _ := registeredUser(t, f, "dan@example.com", "9000000014")

	if err := svc.DeleteAccount(ctx, actor, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := svc.DeleteAccount(ctx, actor, "nope123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.DeleteAccount(ctx, actor, "pass123"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := f.users.FindByID(ctx, actor.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	if revoked, _ := f.revoked.IsRevoked(ctx, actor.Claims); !revoked {
		t.Fatalf("tokens should be revoked after deletion")
	}
}

func TestUserAccountService_AdminDirectory(t *testing.T) {
	f := newAuthFixture(t)
	svc := newUserAccounts(f)
	ctx := context.Background()

	plain, _ := registeredUser(t, f, "erin@example.com", "9000000015")
	admin := domain.Actor{ID: "admin", Kind: domain.KindUser, IsAdmin: true}

	if _, err := svc.List(ctx, plain, "", 1, 10); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	page, err := svc.List(ctx, admin, "erin", 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 || page.Page != 1 || page.Limit != 10 || page.TotalPages != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	if _, err := svc.Get(ctx, admin, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func approvedProvider(t *testing.T, f *authFixture) domain.Actor {
	t.Helper()
	ctx := context.Background()
	session, err := f.svc.RegisterProvider(ctx, providerReg())
	if err != nil {
		t.Fatalf("register provider: %v", err)
	}
	p, err := f.providers.UpdateStatus(ctx, session.Provider.ID, domain.ProviderStatus{IsApproved: boolPtr(true)})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	claims, err := f.codec.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	actor := domain.ActorFromProvider(p)
	actor.Claims = claims
	return actor
}

func newProviderAccounts(f *authFixture) *ProviderAccountService {
	return NewProviderAccountService(f.providers, NewBcryptHasher(4), f.revoked, zerolog.Nop())
}

func TestProviderAccountService_UpdateStatus(t *testing.T) {
	f := newAuthFixture(t)
	svc := newProviderAccounts(f)
	ctx := context.Background()
	issuedAt := time.Now().UTC()
	f.codec.now = func() time.Time { return issuedAt }
	svc.now = func() time.Time { return issuedAt.Add(time.Millisecond) }
	provider := approvedProvider(t, f)
	admin := domain.Actor{ID: "admin", Kind: domain.KindUser, IsAdmin: true}

	if _, err := svc.UpdateStatus(ctx, provider, provider.ID, domain.ProviderStatus{IsActive: boolPtr(false)}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, admin, provider.ID, domain.ProviderStatus{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, admin, provider.ID, domain.ProviderStatus{IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.IsActive || !updated.IsApproved {
		t.Fatalf("unexpected flags: %+v", updated)
	}
	if revoked, _ := f.revoked.IsRevoked(ctx, provider.Claims); !revoked {
		t.Fatalf("deactivation must revoke outstanding tokens")
	}

	if _, err := svc.GetPublic(ctx, provider.ID); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("inactive provider must be hidden from the catalog, got %v", err)
	}
}

func TestProviderAccountService_ReactivatedProviderCanLogIn(t *testing.T) {
	f := newAuthFixture(t)
	svc := newProviderAccounts(f)
	ctx := context.Background()
	provider := approvedProvider(t, f)
	admin := domain.Actor{ID: "admin", Kind: domain.KindUser, IsAdmin: true}

	at := time.Now().UTC()
	svc.now = func() time.Time { return at }
	f.codec.now = func() time.Time { return at }

	if _, err := svc.UpdateStatus(ctx, admin, provider.ID, domain.ProviderStatus{IsActive: boolPtr(false)}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, admin, provider.ID, domain.ProviderStatus{IsActive: boolPtr(true)}); err != nil {
		t.Fatalf("reactivate: %v", err)
	}

	session, err := f.svc.LoginProvider(ctx, "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("LoginProvider: %v", err)
	}
	claims, err := f.codec.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if revoked, _ := f.revoked.IsRevoked(ctx, claims); revoked {
		t.Fatalf("login after reactivation must yield a usable token")
	}
}

func TestProviderAccountService_ProfileAndDocuments(t *testing.T) {
	f := newAuthFixture(t)
	svc := newProviderAccounts(f)
	ctx := context.Background()
	provider := approvedProvider(t, f)

	p, err := svc.UpdateProfile(ctx, provider, domain.ProviderUpdate{BusinessName: strPtr("  Royal Lawns "), FirstName: strPtr(" Ravindra ")})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.BusinessName != "Royal Lawns" || p.FirstName != "Ravindra" || !p.IsApproved {
		t.Fatalf("unexpected provider: %+v", p)
	}

	_, err = svc.AddDocuments(ctx, provider, []domain.Document{{Type: "passport", URL: ""}})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("expected two validation messages, got %v", err)
	}

	docs, err := svc.AddDocuments(ctx, provider, []domain.Document{{Type: domain.DocumentLicense, URL: " /uploads/license.pdf ", IsVerified: true}})
	if err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].IsVerified || docs[0].URL != "/uploads/license.pdf" {
		t.Fatalf("unexpected documents: %+v", docs)
	}

	user := domain.Actor{ID: "u1", Kind: domain.KindUser}
	if _, err := svc.Profile(ctx, user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProviderAccountService_ListPublic(t *testing.T) {
	f := newAuthFixture(t)
	svc := newProviderAccounts(f)
	ctx := context.Background()

	if _, err := f.svc.RegisterProvider(ctx, providerReg()); err != nil {
		t.Fatalf("register: %v", err)
	}
	page, err := svc.ListPublic(ctx, domain.ProviderFilter{})
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("unapproved providers must not be listed, got %d", page.Total)
	}
}
