package profile

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type memUploader struct {
	keys []string
}

func (u *memUploader) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	u.keys = append(u.keys, key)
	return "https://cdn.salon.vn/" + key, nil
}

func setup(t *testing.T, uploader *memUploader) (*Service, *account.Principal) {
	t.Helper()
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)

	hash, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := gdb.Model(&models.User{}).Where("id = ?", fx.Customer.ID).Update("password_hash", string(hash)).Error; err != nil {
		t.Fatalf("set password: %v", err)
	}

	repo := repository.NewAccountGormRepository(gdb)
	var svc *Service
	if uploader != nil {
		svc = NewService(repo, uploader, nil, zap.NewNop())
	} else {
		svc = NewService(repo, nil, nil, zap.NewNop())
	}
	return svc, &account.Principal{UserID: fx.Customer.ID, Role: models.RoleCustomer}
}

func TestUpdate(t *testing.T) {
	svc, me := setup(t, nil)
	ctx := context.Background()

	name, phone := "  Hoa Nguyen ", "0909000111"
	u, err := svc.Update(ctx, me, UpdateInput{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Name != "Hoa Nguyen" || u.Phone != phone {
		t.Fatalf("unexpected user: %+v", u)
	}

	blank := " "
	if _, err := svc.Update(ctx, me, UpdateInput{Name: &blank}); !httperr.IsBusiness(err, "invalid_request") {
		t.Fatalf("expected invalid_request, got %v", err)
	}
	if _, err := svc.Get(ctx, nil); !httperr.IsBusiness(err, "unauthenticated") {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, me := setup(t, nil)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, me, ChangePasswordInput{Current: "wrong", New: "new-secret-1"})
	if !httperr.IsBusiness(err, "invalid_password") {
		t.Fatalf("expected invalid_password, got %v", err)
	}

	err = svc.ChangePassword(ctx, me, ChangePasswordInput{Current: "old-secret", New: "short"})
	if !httperr.IsBusiness(err, "invalid_request") {
		t.Fatalf("expected invalid_request, got %v", err)
	}

	if err := svc.ChangePassword(ctx, me, ChangePasswordInput{Current: "old-secret", New: "new-secret-1"}); err != nil {
		t.Fatalf("change: %v", err)
	}

	u, err := svc.Get(ctx, me)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-secret-1")) != nil {
		t.Fatalf("new password must verify")
	}
}

func TestUploadAvatar(t *testing.T) {
	up := &memUploader{}
	svc, me := setup(t, up)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatalf("png: %v", err)
	}

	u, err := svc.UploadAvatar(ctx, me, &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(up.keys) != 1 || !strings.HasSuffix(up.keys[0], ".webp") || !strings.HasPrefix(u.AvatarURL, "https://cdn.salon.vn/avatars/") {
		t.Fatalf("unexpected upload: keys=%v url=%s", up.keys, u.AvatarURL)
	}

	if _, err := svc.UploadAvatar(ctx, me, strings.NewReader("nope")); !httperr.IsBusiness(err, "invalid_image") {
		t.Fatalf("expected invalid_image, got %v", err)
	}
}

func TestUploadAvatar_NoStorage(t *testing.T) {
	svc, me := setup(t, nil)
	if _, err := svc.UploadAvatar(context.Background(), me, strings.NewReader("")); !httperr.IsBusiness(err, "storage_not_configured") {
		t.Fatalf("expected storage_not_configured, got %v", err)
	}
}
