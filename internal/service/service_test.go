package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"epass-service/config"
	"epass-service/internal/logger"
	"epass-service/internal/messaging"
	"epass-service/internal/model"
	"epass-service/internal/repository"
	"epass-service/internal/storage"
	"epass-service/internal/validation"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingSink struct {
	keys []string
	fail bool
}

func (s *recordingSink) Create(_ context.Context, routingKey string, _ interface{}) error {
	if s.fail {
		return errors.New("outbox unavailable")
	}
	s.keys = append(s.keys, routingKey)
	return nil
}

type fixture struct {
	clock  *clock
	slots  *storage.MemorySlots
	passes *repository.PassRepository
	auth   *AuthService
	pass   *PassService
	views  *ViewService
	sink   *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := &clock{t: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}
	slots := storage.NewMemorySlots()
	log := logger.Nop()
	passes := repository.NewPassRepository(slots, nil, log)
	sessions := repository.NewSessionRepository(slots, log)
	cfg := config.Default()
	auth, err := NewAuthService(sessions, cfg.JWT, cfg.Admin, c.now, log)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	sink := &recordingSink{}
	return &fixture{
		clock:  c,
		slots:  slots,
		passes: passes,
		auth:   auth,
		pass:   NewPassService(passes, sink, c.now, log),
		views:  NewViewService(passes, repository.NewCategoryRepository()),
		sink:   sink,
	}
}

func (f *fixture) draft(email string) *model.Draft {
	tomorrow := f.clock.t.AddDate(0, 0, 1).Format("2006-01-02")
	return &model.Draft{
		CategoryID:  "1",
		FullName:    "Asha Rao",
		Email:       email,
		Phone:       "9876543210",
		Address:     "12 Lake Road",
		Destination: "City X",
		Purpose:     "Medical",
		StartDate:   tomorrow,
		EndDate:     tomorrow,
		StartTime:   "09:00",
		EndTime:     "17:00",
	}
}

func (f *fixture) login(t *testing.T, email, password string, role model.UserType) model.Principal {
	t.Helper()
	resp, err := f.auth.Login(context.Background(), &model.LoginRequest{Email: email, Password: password, Role: role})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	p, _, err := f.auth.Resolve(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return p
}

func (f *fixture) admin(t *testing.T) model.Principal {
	return f.login(t, "admin@curfew.gov", "admin123", model.UserTypeAdmin)
}

func TestLoginAdmin(t *testing.T) {
	f := newFixture(t)
	p := f.admin(t)
	a, ok := p.(model.Administrator)
	if !ok {
		t.Fatalf("expected Administrator, got %T", p)
	}
	if a.Admin.Username != "admin" || a.Admin.Role != model.AdminRoleAdmin || a.Admin.ID != "1" {
		t.Fatalf("unexpected admin identity %+v", a.Admin)
	}
}

func TestLoginAdminWrongCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := []model.LoginRequest{
		{Email: "admin@curfew.gov", Password: "wrong", Role: model.UserTypeAdmin},
		{Email: "someone@curfew.gov", Password: "admin123", Role: model.UserTypeAdmin},
		{Email: "a@b.com", Password: "x", Role: "auditor"},
	}
	for _, req := range cases {
		req := req
		if _, err := f.auth.Login(ctx, &req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%+v: expected ErrInvalidCredentials, got %v", req, err)
		}
	}
}

func TestLoginCitizenSynthesizesUser(t *testing.T) {
	f := newFixture(t)
	p := f.login(t, "ravi@example.com", "anything", model.UserTypeUser)
	c, ok := p.(model.Citizen)
	if !ok {
		t.Fatalf("expected Citizen, got %T", p)
	}
	u := c.User
	if u.FullName != "ravi" || u.Phone != demoPhone || u.Address != demoAddress || u.Email != "ravi@example.com" {
		t.Fatalf("unexpected synthesized user %+v", u)
	}
	if u.ID == "" || !u.CreatedAt.Equal(f.clock.t) {
		t.Fatalf("user must get an id and creation time, got %+v", u)
	}
}

func TestLoginCitizenDefaultsRole(t *testing.T) {
	f := newFixture(t)
	if _, ok := f.login(t, "a@b.com", "pw", "").(model.Citizen); !ok {
		t.Fatalf("empty role should log in as citizen")
	}
}

func TestLoginCitizenRequiresEmailAndPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, req := range []model.LoginRequest{
		{Email: "", Password: "pw", Role: model.UserTypeUser},
		{Email: "a@b.com", Password: "", Role: model.UserTypeUser},
	} {
		req := req
		if _, err := f.auth.Login(ctx, &req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%+v: expected ErrInvalidCredentials, got %v", req, err)
		}
	}
}

func TestRegisterEstablishesCitizenSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.auth.Register(ctx, &model.RegisterRequest{
		Email: "a@b.com", FullName: "Asha Rao", Phone: "98", Address: "Lake Road", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !resp.Session.IsAuthenticated || resp.Session.User == nil || resp.Session.Admin != nil {
		t.Fatalf("unexpected session %+v", resp.Session)
	}
	p, _, err := f.auth.Resolve(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	c, ok := p.(model.Citizen)
	if !ok || c.User.FullName != "Asha Rao" || c.User.Address != "Lake Road" {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestLogoutClearsSessionButKeepsPasses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.auth.Login(ctx, &model.LoginRequest{Email: "a@b.com", Password: "pw", Role: model.UserTypeUser})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	p, sid, err := f.auth.Resolve(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := f.pass.Submit(ctx, p, f.draft("a@b.com")); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := f.auth.Logout(ctx, sid); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := f.auth.Logout(ctx, sid); err != nil {
		t.Fatalf("Logout (again): %v", err)
	}

	// A fresh service over the same slots stands in for a reload.
	reloaded, err := NewAuthService(repository.NewSessionRepository(f.slots, logger.Nop()), config.Default().JWT, config.Default().Admin, f.clock.now, logger.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	p, _, err = reloaded.Resolve(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Resolve after logout: %v", err)
	}
	if _, ok := p.(model.Anonymous); !ok {
		t.Fatalf("expected Anonymous after logout, got %T", p)
	}

	passes, err := f.passes.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(passes) != 1 {
		t.Fatalf("passes must survive logout, got %d", len(passes))
	}
}

func TestSessionSurvivesReload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.auth.Login(ctx, &model.LoginRequest{Email: "admin@curfew.gov", Password: "admin123", Role: model.UserTypeAdmin})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	reloaded, err := NewAuthService(repository.NewSessionRepository(f.slots, logger.Nop()), config.Default().JWT, config.Default().Admin, f.clock.now, logger.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	p, _, err := reloaded.Resolve(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := p.(model.Administrator); !ok {
		t.Fatalf("expected Administrator after reload, got %T", p)
	}
}

func TestResolveCorruptSessionIsAnonymous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.auth.Login(ctx, &model.LoginRequest{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, sid, err := f.auth.Resolve(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := f.slots.Put(ctx, "auth:"+sid, []byte("{{{")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	p, _, err := f.auth.Resolve(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Resolve (corrupt): %v", err)
	}
	if _, ok := p.(model.Anonymous); !ok {
		t.Fatalf("expected Anonymous, got %T", p)
	}
}

func TestResolveRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, _, err := f.auth.Resolve(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	other := config.Default()
	other.JWT.Secret = "another-secret"
	forger, err := NewAuthService(repository.NewSessionRepository(storage.NewMemorySlots(), logger.Nop()), other.JWT, other.Admin, f.clock.now, logger.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	resp, err := forger.Login(ctx, &model.LoginRequest{Email: "admin@curfew.gov", Password: "admin123", Role: model.UserTypeAdmin})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, _, err := f.auth.Resolve(ctx, resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another secret must be rejected, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	f := newFixture(t)
	cfg := config.Default()
	cfg.JWT.ExpirationHours = 1
	auth, err := NewAuthService(repository.NewSessionRepository(f.slots, logger.Nop()), cfg.JWT, cfg.Admin, f.clock.now, logger.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	ctx := context.Background()
	resp, err := auth.Login(ctx, &model.LoginRequest{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	f.clock.advance(2 * time.Hour)
	if _, _, err := auth.Resolve(ctx, resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}

	// Without an expiration the same token age is fine.
	resp, err = f.auth.Login(ctx, &model.LoginRequest{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	f.clock.advance(1000 * time.Hour)
	if _, _, err := f.auth.Resolve(ctx, resp.Token); err != nil {
		t.Fatalf("token without expiry must stay valid, got %v", err)
	}
}

func TestSubmitCreatesPendingPass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	user := citizen.(model.Citizen).User

	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		pass, err := f.pass.Submit(ctx, citizen, f.draft("a@b.com"))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if pass.Status != model.StatusPending {
			t.Fatalf("new pass must be pending, got %s", pass.Status)
		}
		if !pass.AppliedAt.Equal(pass.UpdatedAt) {
			t.Fatalf("appliedAt and updatedAt must match on creation")
		}
		if pass.UserID != user.ID {
			t.Fatalf("expected owner %s, got %s", user.ID, pass.UserID)
		}
		if pass.AdminNotes != nil || pass.ApprovedBy != nil {
			t.Fatalf("decision fields must be unset on creation")
		}
		if ids[pass.ID] {
			t.Fatalf("duplicate id %s", pass.ID)
		}
		ids[pass.ID] = true
	}
	if len(f.sink.keys) != 3 || f.sink.keys[0] != messaging.RoutingKeyPassSubmitted {
		t.Fatalf("expected three submitted events, got %v", f.sink.keys)
	}
}

func TestSubmitValidationFailureChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)

	d := f.draft("a@b.com")
	d.Destination = ""
	d.StartDate = f.clock.t.AddDate(0, 0, -1).Format("2006-01-02")
	_, err := f.pass.Submit(ctx, citizen, d)

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	if _, ok := verrs["destination"]; !ok {
		t.Fatalf("expected destination error, got %v", verrs)
	}
	if _, ok := verrs["startDate"]; !ok {
		t.Fatalf("expected startDate error, got %v", verrs)
	}
	passes, _ := f.passes.List(ctx)
	if len(passes) != 0 {
		t.Fatalf("invalid draft must not be stored")
	}
	if len(f.sink.keys) != 0 {
		t.Fatalf("invalid draft must not emit events")
	}
}

func TestSubmitRequiresCitizen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.pass.Submit(ctx, model.Anonymous{}, f.draft("a@b.com")); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := f.pass.Submit(ctx, f.admin(t), f.draft("a@b.com")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin: expected ErrForbidden, got %v", err)
	}
	if _, err := f.pass.Submit(ctx, nil, f.draft("a@b.com")); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("nil principal: expected ErrUnauthenticated, got %v", err)
	}
}

func TestSubmitEventFailureDoesNotRollBack(t *testing.T) {
	f := newFixture(t)
	f.sink.fail = true
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	if _, err := f.pass.Submit(ctx, citizen, f.draft("a@b.com")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	passes, _ := f.passes.List(ctx)
	if len(passes) != 1 {
		t.Fatalf("pass must be stored even when the event cannot be queued")
	}
}

func TestDecideApproves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	pass, err := f.pass.Submit(ctx, citizen, f.draft("a@b.com"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	f.clock.advance(time.Minute)
	decided, err := f.pass.Decide(ctx, f.admin(t), pass.ID, model.StatusApproved, "Verified")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != model.StatusApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if decided.AdminNotes == nil || *decided.AdminNotes != "Verified" {
		t.Fatalf("expected notes Verified, got %v", decided.AdminNotes)
	}
	if decided.ApprovedBy == nil || *decided.ApprovedBy != "admin" {
		t.Fatalf("expected approver admin, got %v", decided.ApprovedBy)
	}
	if !decided.UpdatedAt.After(decided.AppliedAt) {
		t.Fatalf("updatedAt must move past appliedAt")
	}
	if !decided.AppliedAt.Equal(pass.AppliedAt) {
		t.Fatalf("appliedAt must not change")
	}

	mine, err := f.views.CitizenPasses(ctx, citizen)
	if err != nil {
		t.Fatalf("CitizenPasses: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != model.StatusApproved {
		t.Fatalf("citizen view must reflect the decision immediately, got %+v", mine)
	}
	if f.sink.keys[len(f.sink.keys)-1] != messaging.RoutingKeyPassDecided {
		t.Fatalf("expected decided event, got %v", f.sink.keys)
	}
}

func TestDecideSameInstantStillAdvancesUpdatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	pass, err := f.pass.Submit(ctx, citizen, f.draft("a@b.com"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	decided, err := f.pass.Decide(ctx, f.admin(t), pass.ID, model.StatusRejected, "")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !decided.UpdatedAt.After(decided.AppliedAt) {
		t.Fatalf("updatedAt must be strictly after appliedAt")
	}
	if decided.AdminNotes == nil || *decided.AdminNotes != "" {
		t.Fatalf("empty notes must be recorded as empty string, got %v", decided.AdminNotes)
	}
}

func TestDecideErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	pass, err := f.pass.Submit(ctx, citizen, f.draft("a@b.com"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	admin := f.admin(t)

	if _, err := f.pass.Decide(ctx, admin, "missing", model.StatusApproved, ""); !errors.Is(err, repository.ErrPassNotFound) {
		t.Fatalf("expected ErrPassNotFound, got %v", err)
	}
	if _, err := f.pass.Decide(ctx, admin, pass.ID, model.StatusPending, ""); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
	if _, err := f.pass.Decide(ctx, citizen, pass.ID, model.StatusApproved, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("citizen: expected ErrForbidden, got %v", err)
	}
	if _, err := f.pass.Decide(ctx, model.Anonymous{}, pass.ID, model.StatusApproved, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
	stored, _ := f.passes.FindByID(ctx, pass.ID)
	if stored.Status != model.StatusPending {
		t.Fatalf("failed decisions must not change the pass, got %s", stored.Status)
	}
}

func TestDecideTwiceLastWriteWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	pass, _ := f.pass.Submit(ctx, citizen, f.draft("a@b.com"))
	admin := f.admin(t)

	f.clock.advance(time.Minute)
	first, err := f.pass.Decide(ctx, admin, pass.ID, model.StatusApproved, "ok")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	f.clock.advance(time.Minute)
	second, err := f.pass.Decide(ctx, admin, pass.ID, model.StatusRejected, "changed my mind")
	if err != nil {
		t.Fatalf("Decide (again): %v", err)
	}
	if second.Status != model.StatusRejected || *second.AdminNotes != "changed my mind" {
		t.Fatalf("last decision must win, got %+v", second)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updatedAt must advance on every mutation")
	}
}

func TestCitizenPassesMatchesByIDOrEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	if _, err := f.pass.Submit(ctx, first, f.draft("a@b.com")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	other := f.login(t, "c@d.com", "pw", model.UserTypeUser)
	if _, err := f.pass.Submit(ctx, other, f.draft("c@d.com")); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Logging in again yields a new user id; the email still matches.
	again := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	mine, err := f.views.CitizenPasses(ctx, again)
	if err != nil {
		t.Fatalf("CitizenPasses: %v", err)
	}
	if len(mine) != 1 || mine[0].Email != "a@b.com" {
		t.Fatalf("expected the a@b.com pass only, got %+v", mine)
	}

	if _, err := f.views.CitizenPasses(ctx, f.admin(t)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin has no citizen view, got %v", err)
	}
}

func TestAdminQueueFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	citizen := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	admin := f.admin(t)

	var ids []string
	for i := 0; i < 4; i++ {
		p, err := f.pass.Submit(ctx, citizen, f.draft("a@b.com"))
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		ids = append(ids, p.ID)
	}
	if _, err := f.pass.Decide(ctx, admin, ids[1], model.StatusApproved, ""); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if _, err := f.pass.Decide(ctx, admin, ids[2], model.StatusRejected, ""); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	cases := map[model.StatusFilter][]string{
		model.FilterAll:      ids,
		"":                   ids,
		model.FilterPending:  {ids[0], ids[3]},
		model.FilterApproved: {ids[1]},
		model.FilterRejected: {ids[2]},
	}
	for filter, want := range cases {
		got, err := f.views.AdminQueue(ctx, admin, filter)
		if err != nil {
			t.Fatalf("AdminQueue(%q): %v", filter, err)
		}
		if len(got) != len(want) {
			t.Fatalf("AdminQueue(%q): expected %d, got %d", filter, len(want), len(got))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("AdminQueue(%q): order not preserved at %d", filter, i)
			}
		}
	}

	if _, err := f.views.AdminQueue(ctx, admin, "archived"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if _, err := f.views.AdminQueue(ctx, citizen, model.FilterAll); !errors.Is(err, ErrForbidden) {
		t.Fatalf("citizen: expected ErrForbidden, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)

	stats, err := f.views.Dashboard(ctx, admin)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalApplications != 0 || stats.TotalUsers != 0 || stats.ActiveCategories != 4 {
		t.Fatalf("unexpected empty dashboard %+v", stats)
	}

	a := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	b := f.login(t, "c@d.com", "pw", model.UserTypeUser)
	p1, _ := f.pass.Submit(ctx, a, f.draft("a@b.com"))
	f.pass.Submit(ctx, a, f.draft("a@b.com"))
	p3, _ := f.pass.Submit(ctx, b, f.draft("c@d.com"))
	f.pass.Decide(ctx, admin, p1.ID, model.StatusApproved, "")
	f.pass.Decide(ctx, admin, p3.ID, model.StatusRejected, "")

	stats, err = f.views.Dashboard(ctx, admin)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	want := model.DashboardStats{
		TotalApplications:    3,
		PendingApplications:  1,
		ApprovedApplications: 1,
		RejectedApplications: 1,
		TotalUsers:           2,
		ActiveCategories:     4,
	}
	if *stats != want {
		t.Fatalf("expected %+v, got %+v", want, *stats)
	}

	if _, err := f.views.Dashboard(ctx, a); !errors.Is(err, ErrForbidden) {
		t.Fatalf("citizen: expected ErrForbidden, got %v", err)
	}
}

func TestPassDetailVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.login(t, "a@b.com", "pw", model.UserTypeUser)
	stranger := f.login(t, "x@y.com", "pw", model.UserTypeUser)
	pass, _ := f.pass.Submit(ctx, owner, f.draft("a@b.com"))

	if _, err := f.views.PassDetail(ctx, owner, pass.ID); err != nil {
		t.Fatalf("owner: %v", err)
	}
	if _, err := f.views.PassDetail(ctx, f.admin(t), pass.ID); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if _, err := f.views.PassDetail(ctx, stranger, pass.ID); !errors.Is(err, repository.ErrPassNotFound) {
		t.Fatalf("stranger: expected ErrPassNotFound, got %v", err)
	}
	if _, err := f.views.PassDetail(ctx, model.Anonymous{}, pass.ID); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	if got := len(f.views.Categories(true)); got != 4 {
		t.Fatalf("expected 4 active categories, got %d", got)
	}
	if got := len(f.views.Categories(false)); got != 5 {
		t.Fatalf("expected 5 categories, got %d", got)
	}
}
