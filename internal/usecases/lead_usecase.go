package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/pkg/metrics"
	"realty-crm.backend/pkg/referral"
	"realty-crm.backend/pkg/utils"
)

// LeadUsecase handles lead intake, listing and follow-up business logic
type LeadUsecase struct {
	leadRepo     repositories.LeadRepository
	followUpRepo repositories.FollowUpRepository
	activityRepo repositories.ActivityRepository
	userRepo     repositories.UserRepository
	agentRepo    repositories.AgentRepository
}

// NewLeadUsecase creates a new lead usecase
func NewLeadUsecase(
	leadRepo repositories.LeadRepository,
	followUpRepo repositories.FollowUpRepository,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	agentRepo repositories.AgentRepository,
) *LeadUsecase {
	return &LeadUsecase{
		leadRepo:     leadRepo,
		followUpRepo: followUpRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		agentRepo:    agentRepo,
	}
}

// PublicIntake creates a lead from the unauthenticated website form. A
// referral code routes the lead to the owning channel partner's agent;
// an unknown or inactive code is rejected rather than silently dropped.
func (u *LeadUsecase) PublicIntake(ctx context.Context, input *entities.PublicLeadInput) (*entities.Lead, error) {
	lead := &entities.Lead{
		ID:     utils.GenerateUUIDv7(),
		Name:   input.Name,
		Phone:  input.Phone,
		Status: entities.LeadStatusNew,
		Source: entities.LeadSourceWebsite,
		Notes:  input.Notes,
		Metadata: map[string]string{
			"channel": "public_form",
		},
	}
	if input.Email != "" {
		lead.Email = null.StringFrom(input.Email)
	}
	if input.Budget != nil {
		lead.Budget = null.Float64From(*input.Budget)
	}

	var agent *entities.Agent
	if input.ReferralCode != "" {
		code := referral.Normalize(input.ReferralCode)
		resolved, err := u.resolveReferral(ctx, code)
		if err != nil {
			metrics.LeadIntakeTotal.WithLabelValues("referral", "rejected").Inc()
			return nil, err
		}
		agent = resolved
		lead.Source = entities.LeadSourceReferral
		lead.AssignedAgentID = uuid.NullUUID{UUID: agent.ID, Valid: true}
		lead.Metadata = map[string]string{
			"channel":       "public_form",
			"referralCode":  code,
			"partnerUserId": agent.UserID.String(),
		}
	}

	if err := u.leadRepo.Create(ctx, lead); err != nil {
		metrics.LeadIntakeTotal.WithLabelValues(string(lead.Source), "error").Inc()
		return nil, err
	}
	metrics.LeadIntakeTotal.WithLabelValues(string(lead.Source), "created").Inc()

	// Best effort, the lead itself is the source of truth for counts.
	if agent != nil {
		agent.Metrics.TotalLeads++
		_ = u.agentRepo.UpdateMetrics(ctx, agent.ID, agent.Metrics)
	}

	u.recordActivity(ctx, entities.ActivityEntityLead, lead.ID, "lead.created",
		fmt.Sprintf("source=%s", lead.Source), uuid.NullUUID{})

	return lead, nil
}

// resolveReferral maps a referral code to the channel partner's agent.
func (u *LeadUsecase) resolveReferral(ctx context.Context, code string) (*entities.Agent, error) {
	partner, err := u.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequestCode(domainerrors.CodeInvalidReferralCode, "unknown referral code")
		}
		return nil, err
	}
	if !partner.IsActive {
		return nil, domainerrors.BadRequestCode(domainerrors.CodeInvalidReferralCode, "referral code is no longer active")
	}

	agent, err := u.agentRepo.GetByUserID(ctx, partner.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequestCode(domainerrors.CodeInvalidReferralCode, "referral code is no longer active")
		}
		return nil, err
	}
	if agent.Status != entities.AgentStatusActive {
		return nil, domainerrors.BadRequestCode(domainerrors.CodeInvalidReferralCode, "referral code is no longer active")
	}
	return agent, nil
}

// List returns leads visible to the actor, newest first. Admins and
// builders see everything; channel partners see only their own leads.
func (u *LeadUsecase) List(ctx context.Context, actor *entities.User, status *entities.LeadStatus, limit, offset int) ([]*entities.Lead, int64, error) {
	filter := entities.LeadFilter{Status: status, Limit: limit, Offset: offset}

	if actor.Role == entities.UserRoleChannelPartner {
		agent, err := u.agentRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				// partner without an agent record owns no leads
				return []*entities.Lead{}, 0, nil
			}
			return nil, 0, err
		}
		filter.AgentID = &agent.ID
	}

	return u.leadRepo.List(ctx, filter)
}

// Get returns a single lead, enforcing ownership for channel partners.
func (u *LeadUsecase) Get(ctx context.Context, actor *entities.User, id uuid.UUID) (*entities.Lead, error) {
	lead, err := u.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("lead not found")
		}
		return nil, err
	}
	if err := u.authorizeLeadAccess(ctx, actor, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Update applies a partial update. Status values are checked for set
// membership only; any transition between known statuses is allowed.
func (u *LeadUsecase) Update(ctx context.Context, actor *entities.User, id uuid.UUID, input *entities.UpdateLeadInput) (*entities.Lead, error) {
	lead, err := u.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previousStatus := lead.Status
	if input.Status != nil {
		status := entities.LeadStatus(*input.Status)
		if !status.Valid() {
			return nil, domainerrors.BadRequestCode(domainerrors.CodeInvalidStatus, "unknown lead status")
		}
		lead.Status = status
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}

	if err := u.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	if input.Status != nil && lead.Status != previousStatus {
		u.recordActivity(ctx, entities.ActivityEntityLead, lead.ID, "lead.status_changed",
			fmt.Sprintf("%s -> %s", previousStatus, lead.Status),
			uuid.NullUUID{UUID: actor.ID, Valid: true})
		u.bumpConversionMetrics(ctx, lead)
	}

	return lead, nil
}

// bumpConversionMetrics keeps the owning agent's counters in step with
// lead progress. Failures here never fail the update itself.
func (u *LeadUsecase) bumpConversionMetrics(ctx context.Context, lead *entities.Lead) {
	if !lead.AssignedAgentID.Valid {
		return
	}
	agent, err := u.agentRepo.GetByID(ctx, lead.AssignedAgentID.UUID)
	if err != nil {
		return
	}
	switch lead.Status {
	case entities.LeadStatusConverted:
		agent.Metrics.ConvertedLeads++
	case entities.LeadStatusSiteVisit:
		agent.Metrics.SiteVisits++
	default:
		return
	}
	_ = u.agentRepo.UpdateMetrics(ctx, agent.ID, agent.Metrics)
}

// CreateFollowUp schedules a follow-up on a lead the actor can access.
func (u *LeadUsecase) CreateFollowUp(ctx context.Context, actor *entities.User, leadID uuid.UUID, input *entities.CreateFollowUpInput) (*entities.FollowUp, error) {
	if _, err := u.Get(ctx, actor, leadID); err != nil {
		return nil, err
	}

	followUp := &entities.FollowUp{
		ID:          utils.GenerateUUIDv7(),
		LeadID:      leadID,
		Type:        entities.FollowUpType(input.Type),
		Note:        input.Note,
		ScheduledAt: input.ScheduledAt,
		Reminder:    input.Reminder,
		Status:      entities.FollowUpStatusPending,
		CreatedBy:   actor.ID,
	}
	if err := u.followUpRepo.Create(ctx, followUp); err != nil {
		return nil, err
	}

	u.recordActivity(ctx, entities.ActivityEntityFollowUp, followUp.ID, "follow_up.created",
		fmt.Sprintf("type=%s lead=%s", followUp.Type, leadID),
		uuid.NullUUID{UUID: actor.ID, Valid: true})

	return followUp, nil
}

// UpdateFollowUp applies a partial update. Completing a follow-up stamps
// its completion time.
func (u *LeadUsecase) UpdateFollowUp(ctx context.Context, actor *entities.User, id uuid.UUID, input *entities.UpdateFollowUpInput) (*entities.FollowUp, error) {
	followUp, err := u.followUpRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("follow-up not found")
		}
		return nil, err
	}
	if _, err := u.Get(ctx, actor, followUp.LeadID); err != nil {
		return nil, err
	}

	if input.Status != nil {
		status := entities.FollowUpStatus(*input.Status)
		if status != entities.FollowUpStatusPending && status != entities.FollowUpStatusCompleted {
			return nil, domainerrors.BadRequestCode(domainerrors.CodeInvalidStatus, "unknown follow-up status")
		}
		if status == entities.FollowUpStatusCompleted && followUp.Status != entities.FollowUpStatusCompleted {
			followUp.CompletedAt = null.TimeFrom(time.Now().UTC())
		}
		followUp.Status = status
	}
	if input.Note != nil {
		followUp.Note = *input.Note
	}
	if input.ScheduledAt != nil {
		followUp.ScheduledAt = *input.ScheduledAt
	}
	if input.Reminder != nil {
		followUp.Reminder = *input.Reminder
	}

	if err := u.followUpRepo.Update(ctx, followUp); err != nil {
		return nil, err
	}
	return followUp, nil
}

// ListFollowUps returns the follow-ups for a lead the actor can access.
func (u *LeadUsecase) ListFollowUps(ctx context.Context, actor *entities.User, leadID uuid.UUID) ([]*entities.FollowUp, error) {
	if _, err := u.Get(ctx, actor, leadID); err != nil {
		return nil, err
	}
	return u.followUpRepo.ListByLead(ctx, leadID)
}

// ListActivities returns the audit trail for a lead the actor can access.
func (u *LeadUsecase) ListActivities(ctx context.Context, actor *entities.User, leadID uuid.UUID) ([]*entities.Activity, error) {
	if _, err := u.Get(ctx, actor, leadID); err != nil {
		return nil, err
	}
	return u.activityRepo.ListByEntity(ctx, entities.ActivityEntityLead, leadID)
}

func (u *LeadUsecase) authorizeLeadAccess(ctx context.Context, actor *entities.User, lead *entities.Lead) error {
	if actor.Role == entities.UserRoleAdmin || actor.Role == entities.UserRoleBuilder {
		return nil
	}
	if actor.Role != entities.UserRoleChannelPartner {
		return domainerrors.Forbidden("insufficient permissions")
	}
	agent, err := u.agentRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.Forbidden("lead belongs to another agent")
		}
		return err
	}
	if !lead.AssignedAgentID.Valid || lead.AssignedAgentID.UUID != agent.ID {
		return domainerrors.Forbidden("lead belongs to another agent")
	}
	return nil
}

// recordActivity writes an audit row. Audit failures are deliberately
// swallowed; the primary operation already succeeded.
func (u *LeadUsecase) recordActivity(ctx context.Context, entityType string, entityID uuid.UUID, action, detail string, actorID uuid.NullUUID) {
	_ = u.activityRepo.Create(ctx, &entities.Activity{
		ID:         utils.GenerateUUIDv7(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
		ActorID:    actorID,
	})
}
