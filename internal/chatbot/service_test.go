package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type fakeGenerator struct {
	system  string
	history []Turn
	err     error
}

func (g *fakeGenerator) Generate(_ context.Context, system string, history []Turn, message string) (string, error) {
	g.system = system
	g.history = history
	if g.err != nil {
		return "", g.err
	}
	return "echo: " + message, nil
}

func TestSend_GuestConversation(t *testing.T) {
	gdb := dbtest.Open(t)
	dbtest.Seed(t, gdb)
	gen := &fakeGenerator{}
	svc := NewService(repository.NewChatGormRepository(gdb), gen, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Send(ctx, nil, SendInput{Message: "How much is a haircut?"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if first.Session.GuestToken == "" || first.Reply.Content != "echo: How much is a haircut?" {
		t.Fatalf("unexpected result: %+v / %+v", first.Session, first.Reply)
	}
	if !strings.Contains(gen.system, "Haircut & Styling: 100000 VND, 60 minutes") || !strings.Contains(gen.system, "District 1") {
		t.Fatalf("system prompt must carry the catalog:\n%s", gen.system)
	}

	second, err := svc.Send(ctx, nil, SendInput{SessionID: first.Session.ID, GuestToken: first.Session.GuestToken, Message: "And on Sunday?"})
	if err != nil {
		t.Fatalf("second send: %v", err)
	}
	if len(gen.history) != 2 || gen.history[0].Role != models.ChatRoleUser || gen.history[1].Role != models.ChatRoleAssistant {
		t.Fatalf("expected previous exchange as history, got %+v", gen.history)
	}

	if _, err := svc.Send(ctx, nil, SendInput{SessionID: first.Session.ID, GuestToken: "wrong", Message: "hi"}); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}

	msgs, err := svc.Messages(ctx, nil, first.Session.ID, first.Session.GuestToken, first.Reply.ID)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != second.Message.ID || msgs[1].ID != second.Reply.ID {
		t.Fatalf("expected only the newer exchange, got %d messages", len(msgs))
	}
}

func TestSend_GeneratorFailureFallsBack(t *testing.T) {
	gdb := dbtest.Open(t)
	fx := dbtest.Seed(t, gdb)
	svc := NewService(repository.NewChatGormRepository(gdb), &fakeGenerator{err: errors.New("quota exceeded")}, zap.NewNop())
	me := &account.Principal{UserID: fx.Customer.ID, Role: models.RoleCustomer}

	res, err := svc.Send(context.Background(), me, SendInput{Message: "hello"})
	if err != nil {
		t.Fatalf("generator errors must not surface: %v", err)
	}
	if res.Reply.Content != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", res.Reply.Content)
	}
	if res.Session.UserID == nil || *res.Session.UserID != me.UserID {
		t.Fatalf("session must belong to the user")
	}

	other := &account.Principal{UserID: fx.Admin.ID, Role: models.RoleAdmin}
	if _, err := svc.Messages(context.Background(), other, res.Session.ID, "", 0); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSend_Validation(t *testing.T) {
	gdb := dbtest.Open(t)
	svc := NewService(repository.NewChatGormRepository(gdb), nil, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Send(ctx, nil, SendInput{Message: "   "}); !httperr.IsBusiness(err, "empty_message") {
		t.Fatalf("expected empty_message, got %v", err)
	}
	if _, err := svc.Send(ctx, nil, SendInput{Message: strings.Repeat("a", MaxMessageLength+1)}); !httperr.IsBusiness(err, "invalid_request") {
		t.Fatalf("expected invalid_request, got %v", err)
	}
	if _, err := svc.Send(ctx, nil, SendInput{SessionID: 42, Message: "hi"}); !httperr.IsBusiness(err, "session_not_found") {
		t.Fatalf("expected session_not_found, got %v", err)
	}

	res, err := svc.Send(ctx, nil, SendInput{Message: "hi"})
	if err != nil || res.Reply.Content != FallbackReply {
		t.Fatalf("nil generator must fall back: %v", err)
	}
}

func TestTitle(t *testing.T) {
	long := strings.Repeat("á", 60)
	if got := title(long); len([]rune(got)) != titleLength+1 {
		t.Fatalf("expected truncated title, got %d runes", len([]rune(got)))
	}
	if title("short") != "short" {
		t.Fatalf("short titles are kept")
	}
}
