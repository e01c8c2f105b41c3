package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// In-memory repository fakes. They return pgx.ErrNoRows on missing rows so
// the services translate lookups the same way they do against Postgres.

type fakeUserRepo struct {
	seq   int64
	users map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.seq++
	user.ID = f.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return f.collect(func(domain.User) bool { return true }), nil
}

func (f *fakeUserRepo) ListActive(_ context.Context) ([]domain.User, error) {
	return f.collect(func(u domain.User) bool { return u.Active }), nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) collect(keep func(domain.User) bool) []domain.User {
	users := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		if keep(user) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

type fakeRoleRepo struct {
	roles map[domain.RoleName]domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	f := &fakeRoleRepo{roles: map[domain.RoleName]domain.Role{}}
	for i, name := range domain.AllRoleNames() {
		f.roles[name] = domain.Role{ID: int64(i + 1), Name: name}
	}
	return f
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &role, nil
}

func (f *fakeRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(f.roles))
	for _, role := range f.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

func (f *fakeRoleRepo) Ensure(_ context.Context, name domain.RoleName) error {
	if _, ok := f.roles[name]; !ok {
		f.roles[name] = domain.Role{ID: int64(len(f.roles) + 1), Name: name}
	}
	return nil
}

type fakeHistoryRepo struct {
	seq     int64
	entries []domain.TicketHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (f *fakeHistoryRepo) Create(_ context.Context, history *domain.TicketHistory) error {
	f.seq++
	history.ID = f.seq
	history.At = time.Now()
	f.entries = append(f.entries, *history)
	return nil
}

func (f *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.TicketHistory, error) {
	entries := make([]domain.TicketHistory, 0)
	for _, entry := range f.entries {
		if entry.TicketID == ticketID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type fakeTicketRepo struct {
	seq     int64
	tickets map[int64]domain.Ticket
	history *fakeHistoryRepo
}

func newFakeTicketRepo(history *fakeHistoryRepo) *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[int64]domain.Ticket{}, history: history}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.seq++
	ticket.ID = f.seq
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket, history *domain.TicketHistory) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	f.tickets[ticket.ID] = *ticket
	if history != nil && f.history != nil {
		return f.history.Create(ctx, history)
	}
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (f *fakeTicketRepo) GetByCode(_ context.Context, code string) (*domain.Ticket, error) {
	for _, ticket := range f.tickets {
		if ticket.Code == code {
			copied := ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	matched := make([]domain.Ticket, 0)
	for _, ticket := range f.tickets {
		if filter.OwnerID != nil && ticket.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.AssigneeID != nil && !sameAssignee(ticket.AssigneeID, filter.AssigneeID) {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		matched = append(matched, ticket)
	}
	return paginate(matched, page), nil
}

func (f *fakeTicketRepo) Search(_ context.Context, term string, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	matched := make([]domain.Ticket, 0)
	for _, ticket := range f.tickets {
		if strings.Contains(ticket.Subject, term) ||
			strings.Contains(ticket.Description, term) ||
			strings.Contains(ticket.Code, term) {
			matched = append(matched, ticket)
		}
	}
	return paginate(matched, page), nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func paginate(tickets []domain.Ticket, page repository.PageRequest) repository.Page[domain.Ticket] {
	page = page.Normalized()
	sort.Slice(tickets, func(i, j int) bool {
		if page.Descending() {
			return tickets[i].ID > tickets[j].ID
		}
		return tickets[i].ID < tickets[j].ID
	})

	total := int64(len(tickets))
	start := page.Offset()
	if start > len(tickets) {
		start = len(tickets)
	}
	end := start + page.Size
	if end > len(tickets) {
		end = len(tickets)
	}
	return repository.Page[domain.Ticket]{
		Items:      tickets[start:end],
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
	}
}

type fakeCommentRepo struct {
	seq      int64
	comments map[int64]domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]domain.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.seq++
	comment.ID = f.seq
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return pgx.ErrNoRows
	}
	comment.UpdatedAt = time.Now()
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := comment
	return &copied, nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Comment, error) {
	return f.collect(func(c domain.Comment) bool { return c.TicketID == ticketID }), nil
}

func (f *fakeCommentRepo) ListByTicketPaged(ctx context.Context, ticketID int64, page repository.PageRequest) (repository.Page[domain.Comment], error) {
	comments, _ := f.ListByTicket(ctx, ticketID)
	page = page.Normalized()
	total := int64(len(comments))
	start := page.Offset()
	if start > len(comments) {
		start = len(comments)
	}
	end := start + page.Size
	if end > len(comments) {
		end = len(comments)
	}
	return repository.Page[domain.Comment]{
		Items:      comments[start:end],
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}

func (f *fakeCommentRepo) ListByAuthor(_ context.Context, authorID int64) ([]domain.Comment, error) {
	return f.collect(func(c domain.Comment) bool { return c.AuthorID == authorID }), nil
}

func (f *fakeCommentRepo) CountByTicket(_ context.Context, ticketID int64) (int64, error) {
	var count int64
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) collect(keep func(domain.Comment) bool) []domain.Comment {
	comments := make([]domain.Comment, 0)
	for _, comment := range f.comments {
		if keep(comment) {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	matched := make([]events.Event, 0)
	for _, event := range d.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
