// Package userdetail is the administration view of a single user record:
// a read-only rendering of every attribute plus edit, delete and
// send-email actions.
package userdetail

import (
	"context"
	"fmt"
	"sync"

	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/routes"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/nfrund/userdesk/internal/view"
)

// Mutations are the remote operations the view triggers. Each takes only the
// record id.
type Mutations interface {
	DeleteUser(ctx context.Context, id string) (*users.MutationResult, error)
	EmailUser(ctx context.Context, id string) (*users.MutationResult, error)
}

// Outcome reports what a click resulted in.
type Outcome int

const (
	// Declined means the confirmation was refused and nothing happened.
	Declined Outcome = iota
	Succeeded
	Failed
	// Discarded means the call finished after the view was unmounted.
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Declined:
		return "declined"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Discarded:
		return "discarded"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Capabilities are the collaborators injected by the host (HTTP handler or CLI).
type Capabilities struct {
	Notifier  view.Notifier
	Navigator view.Navigator
	Confirmer view.Confirmer
}

// View is created per interaction and must not be reused after Unmount.
type View struct {
	api  Mutations
	caps Capabilities

	mu      sync.Mutex
	mounted bool
}

// New returns a mounted View.
func New(api Mutations, caps Capabilities) *View {
	return &View{api: api, caps: caps, mounted: true}
}

// Unmount detaches the view. Results of calls still in flight are dropped.
func (v *View) Unmount() {
	v.mu.Lock()
	v.mounted = false
	v.mu.Unlock()
}

func (v *View) isMounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

// DeletePrompt is the question asked before deleting the user id.
func DeletePrompt(id string) string {
	return fmt.Sprintf("Are you sure you want to delete user %s?", id)
}

// EmailPrompt is the question asked before emailing the user id.
func EmailPrompt(id string) string {
	return fmt.Sprintf("Are you sure you want to send an email to %s?", id)
}

// Edit navigates to the edit form of user.
func (v *View) Edit(user *domain.User) {
	v.caps.Navigator.Navigate(routes.EditUser(user.Key()))
}

// OnDeleteClick deletes the user after confirmation. On success the user
// list is shown; on failure the error's message is reported and the view
// stays where it is.
func (v *View) OnDeleteClick(ctx context.Context, id string) Outcome {
	if !v.caps.Confirmer.Confirm(DeletePrompt(id)) {
		return Declined
	}
	_, err := v.api.DeleteUser(ctx, id)
	if !v.isMounted() {
		return Discarded
	}
	if err != nil {
		v.caps.Notifier.Error(err.Error())
		return Failed
	}
	v.caps.Notifier.Success("User deleted")
	v.caps.Navigator.Navigate(routes.Users())
	return Succeeded
}

// OnEmailClick sends the notification email after confirmation. It never
// navigates.
func (v *View) OnEmailClick(ctx context.Context, id string) Outcome {
	if !v.caps.Confirmer.Confirm(EmailPrompt(id)) {
		return Declined
	}
	_, err := v.api.EmailUser(ctx, id)
	if !v.isMounted() {
		return Discarded
	}
	if err != nil {
		v.caps.Notifier.Error(err.Error())
		return Failed
	}
	v.caps.Notifier.Success("Email sent")
	return Succeeded
}
