package usecase

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"hirehub/internal/data/entity"
	"hirehub/internal/data/repository"
	"hirehub/internal/dto/request"
	"hirehub/internal/dto/response"
	"hirehub/pkg/mailer"
	"hirehub/pkg/metrics"
	"hirehub/pkg/social"
	"hirehub/pkg/token"
	"hirehub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const mailTimeout = 10 * time.Second

type Service struct {
	Auth     AuthService
	Password PasswordService
	User     UserService
	Admin    AdminService
	Social   SocialService

	core *core
}

// Wait blocks until mail sent in the background has been handed to the mailer.
func (s *Service) Wait() {
	s.core.background.Wait()
}

// Deps are the collaborators shared by every service.
type Deps struct {
	Repo      *repository.Repository
	Tokens    *token.Manager
	Resets    *token.ResetTokenGenerator
	Mailer    mailer.Sender
	Providers map[string]social.Provider
	Metrics   *metrics.Metrics
	Config    *utils.Config
	Log       *zap.Logger
	Now       func() time.Time
}

func NewService(deps Deps) *Service {
	c := newCore(deps)
	return &Service{
		Auth:     NewAuthService(c),
		Password: NewPasswordService(c),
		User:     NewUserService(c),
		Admin:    NewAdminService(c),
		Social:   NewSocialService(c, deps.Providers),
		core:     c,
	}
}

// core holds the dependencies and the steps shared by several services.
type core struct {
	repo    *repository.Repository
	tokens  *token.Manager
	resets  *token.ResetTokenGenerator
	mail    mailer.Sender
	metrics *metrics.Metrics
	config  *utils.Config
	log     *zap.Logger
	now     func() time.Time

	background sync.WaitGroup

	decoyOnce sync.Once
	decoy     string
}

func newCore(deps Deps) *core {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	resets := deps.Resets
	if resets == nil {
		resets = token.NewResetTokenGenerator(deps.Config.JWT.Secret, deps.Config.JWT.ResetTTL)
	}
	return &core{
		repo:    deps.Repo,
		tokens:  deps.Tokens,
		resets:  resets,
		mail:    deps.Mailer,
		metrics: deps.Metrics,
		config:  deps.Config,
		log:     deps.Log,
		now:     now,
	}
}

// sendMail delivers msg without letting a failure reach the caller.
func (c *core) sendMail(ctx context.Context, kind string, msg mailer.Message) {
	if c.mail == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
	defer cancel()

	err := c.mail.Send(ctx, msg)
	c.metrics.Email(kind, err)
	if err != nil {
		c.log.Warn("Failed to send email",
			zap.String("kind", kind),
			zap.String("to", msg.To),
			zap.Error(err))
	}
}

// decoyHash is a bcrypt hash at the configured cost that no account owns.
// Checking a password against it when the email is unknown keeps login
// latency the same for unknown and existing accounts.
func (c *core) decoyHash() string {
	c.decoyOnce.Do(func() {
		hash, err := utils.HashPassword(uuid.NewString(), c.config.JWT.BcryptCost)
		if err != nil {
			c.log.Error("Failed to build decoy hash", zap.Error(err))
			return
		}
		c.decoy = hash
	})
	return c.decoy
}

// sendMailLater delivers msg after the caller has returned, so response
// latency does not depend on whether a message was sent.
func (c *core) sendMailLater(ctx context.Context, kind string, msg mailer.Message) {
	ctx = context.WithoutCancel(ctx)
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		c.sendMail(ctx, kind, msg)
	}()
}

func (c *core) sendVerification(ctx context.Context, user *entity.User) {
	issued, err := c.tokens.IssueVerification(user.ID)
	if err != nil {
		c.log.Error("Failed to issue verification token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return
	}

	link := fmt.Sprintf("%s/api/email-verify?token=%s", c.config.App.BaseURL, url.QueryEscape(issued.Token))
	c.sendMail(ctx, "verification", mailer.VerificationEmail(user.Email, displayName(user), link))
}

// issuePair signs an access and refresh token and records the refresh token
// as an outstanding session.
func (c *core) issuePair(ctx context.Context, sessions repository.SessionRepository, user *entity.User, client request.ClientInfo) (response.TokenPair, error) {
	refresh, err := c.tokens.IssueRefresh(user.ID, string(user.Role))
	if err != nil {
		return response.TokenPair{}, err
	}
	access, err := c.tokens.IssueAccess(user.ID, string(user.Role))
	if err != nil {
		return response.TokenPair{}, err
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: c.now()},
		UserID:     user.ID,
		Token:      refresh.ID,
		UserAgent:  optional(client.UserAgent),
		IPAddress:  optional(client.IPAddress),
		ExpiresAt:  refresh.ExpiresAt,
	}
	if err := sessions.Create(ctx, session); err != nil {
		return response.TokenPair{}, err
	}
	c.metrics.Session("issued", 1)

	return response.TokenPair{Refresh: refresh.Token, Access: access.Token}, nil
}

// checkLoginGate applies the verification and approval gates in that order.
func checkLoginGate(user *entity.User) error {
	if !user.IsVerified {
		return newError(ErrAccountNotVerified, "Email is not verified")
	}
	if user.Role == entity.RoleProvider {
		switch user.Status {
		case entity.StatusApproved:
		case entity.StatusRejected:
			return newError(ErrApprovalRejected, "Your provider account was not approved")
		default:
			return newError(ErrApprovalPending, "Your account is pending approval")
		}
	}
	return nil
}

// finishLogin issues the session pair for an account that passed every gate
// and tells the client where to go next.
func (c *core) finishLogin(ctx context.Context, user *entity.User, client request.ClientInfo) (*response.LoginResponse, error) {
	profile, err := c.repo.Profile.FindByUser(ctx, user.ID, user.Role)
	if err != nil {
		c.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var pair response.TokenPair
	err = c.repo.WithTx(ctx, func(tx *repository.Repository) error {
		var err error
		if pair, err = c.issuePair(ctx, tx.Session, user, client); err != nil {
			return err
		}
		return tx.User.UpdateLastLogin(ctx, user.ID, c.now())
	})
	if err != nil {
		c.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	complete := profile.Matches(user.Role) && profile.IsComplete()
	return &response.LoginResponse{
		TokenPair:       pair,
		Email:           user.Email,
		Username:        user.Username,
		Role:            user.Role,
		ProfileComplete: complete,
		RedirectURL:     ProfileRedirect(user.Role, complete),
	}, nil
}

// ProfileRedirect is where a client goes after login.
func ProfileRedirect(role entity.UserRole, complete bool) string {
	if complete {
		return "/dashboard/"
	}
	return fmt.Sprintf("/complete-%s-profile/", role)
}

func displayName(user *entity.User) string {
	if user.Username != nil && *user.Username != "" {
		return *user.Username
	}
	return user.Email
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
