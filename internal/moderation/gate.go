package moderation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
)

// Proposal is one requested mutation plus the actor requesting it.
type Proposal struct {
	EntityType enums.EntityType
	EntityID   *uuid.UUID
	Action     enums.ChangeAction
	Actor      string
	Role       enums.UserRole
	Payload    json.RawMessage
	Original   *string
}

// Outcome reports where a proposal ended up.
type Outcome struct {
	Change    *models.PendingChange `json:"change"`
	Published bool                  `json:"published"`
}

// Gate is the single entry point for content mutations. Based on the
// actor's role a proposal either publishes immediately or queues for
// review.
type Gate struct {
	svc Service
}

func NewGate(svc Service) (*Gate, error) {
	if svc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "moderation service required")
	}
	return &Gate{svc: svc}, nil
}

func (g *Gate) Propose(ctx context.Context, proposal Proposal) (*Outcome, error) {
	params := SubmitParams{
		EntityType:   proposal.EntityType,
		EntityID:     proposal.EntityID,
		Action:       proposal.Action,
		SubmittedBy:  proposal.Actor,
		ChangeData:   string(proposal.Payload),
		OriginalData: proposal.Original,
	}

	if !RequiresModeration(proposal.Role) {
		change, err := g.svc.SubmitPreApproved(ctx, params)
		if err != nil {
			return nil, err
		}
		return &Outcome{Change: change, Published: true}, nil
	}

	// Advisory guard: refuse stacking a second proposal on a record that
	// already has one in review. The partial unique index closes the
	// race this check cannot.
	if proposal.Action != enums.ChangeActionCreate && proposal.EntityID != nil {
		open, err := g.svc.HasOpenChange(ctx, *proposal.EntityID)
		if err != nil {
			return nil, err
		}
		if open {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "entity already has an open change")
		}
	}

	change, err := g.svc.Submit(ctx, params)
	if err != nil {
		return nil, err
	}
	return &Outcome{Change: change, Published: false}, nil
}
