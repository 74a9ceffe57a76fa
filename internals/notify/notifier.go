package notify

import (
	"context"
	"encoding/json"

	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/account"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/rabbitmq"

	"github.com/google/uuid"
)

const (
	EventAccountRegistered = "account.registered"
	EventUpgradeRequested  = "account.upgrade_requested"
	EventRoleAssigned      = "account.role_assigned"
)

type publisher interface {
	Publish(ctx context.Context, body []byte) error
}

type accountEvent struct {
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// AccountNotifier pushes account lifecycle events to the broker so the admin
// side can react (upgrade-request review queues, welcome mails).
type AccountNotifier struct {
	pub publisher
}

func NewAccountNotifier(pub publisher) *AccountNotifier {
	return &AccountNotifier{
		pub: pub,
	}
}

func (n *AccountNotifier) AccountRegistered(ctx context.Context, acct account.Account) error {
	return n.emit(ctx, EventAccountRegistered, acct)
}

func (n *AccountNotifier) UpgradeRequested(ctx context.Context, acct account.Account) error {
	return n.emit(ctx, EventUpgradeRequested, acct)
}

func (n *AccountNotifier) RoleAssigned(ctx context.Context, acct account.Account) error {
	return n.emit(ctx, EventRoleAssigned, acct)
}

func (n *AccountNotifier) emit(ctx context.Context, eventType string, acct account.Account) error {
	payload, err := json.Marshal(accountEvent{
		Email:  acct.Email,
		Name:   acct.Name,
		Role:   acct.Role,
		Status: acct.Status,
	})
	if err != nil {
		return err
	}

	body, err := json.Marshal(rabbitmq.EventPayload{
		ID:      uuid.New(),
		Type:    eventType,
		Payload: payload,
	})
	if err != nil {
		return err
	}

	return n.pub.Publish(ctx, body)
}

// NoopNotifier stands in when no broker is configured. Reconciliation does
// not depend on the broker being reachable.
type NoopNotifier struct{}

func (NoopNotifier) AccountRegistered(ctx context.Context, acct account.Account) error { return nil }
func (NoopNotifier) UpgradeRequested(ctx context.Context, acct account.Account) error  { return nil }
func (NoopNotifier) RoleAssigned(ctx context.Context, acct account.Account) error      { return nil }
