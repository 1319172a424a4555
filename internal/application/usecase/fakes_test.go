package usecase_test

import (
	"strings"
	"time"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

// Fakes en memoria de los puertos de persistencia usados por los casos de uso
// de este paquete.

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (r *memUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) Update(u *entity.User) error         { r.users[u.ID] = u; return nil }
func (r *memUserRepo) UpdatePassword(string, string) error { return nil }
func (r *memUserRepo) Delete(id string) error              { delete(r.users, id); return nil }
func (r *memUserRepo) ListByCompany(companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *memUserRepo) SetMembership(userID string, companyID *string, role string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CompanyID = companyID
	u.Role = role
	return nil
}
func (r *memUserRepo) SetPermissions(userID string, manage, expel bool) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CanManageRoles = manage
	u.CanExpelUsers = expel
	return nil
}
func (r *memUserRepo) SetSubscription(userID, status string, expiry *time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SubscriptionStatus = status
	u.SubscriptionExpiry = expiry
	return nil
}
func (r *memUserRepo) ClaimInvoiceNumber(userID string) (int, error) {
	u, ok := r.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	n := u.InvoiceCounter
	u.InvoiceCounter++
	return n, nil
}
func (r *memUserRepo) ClaimProformaNumber(userID string) (int, error) {
	u, ok := r.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	n := u.ProformaCounter
	u.ProformaCounter++
	return n, nil
}

type memCompanyRepo struct {
	companies map[string]*entity.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: map[string]*entity.Company{}}
}

func (r *memCompanyRepo) Create(c *entity.Company) error           { r.companies[c.ID] = c; return nil }
func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) { return r.companies[id], nil }
func (r *memCompanyRepo) GetByOwner(ownerID string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.OwnerID == ownerID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCompanyRepo) Update(c *entity.Company) error { r.companies[c.ID] = c; return nil }
func (r *memCompanyRepo) Delete(id string) error         { delete(r.companies, id); return nil }

type memInvitationRepo struct {
	invitations map[string]*entity.Invitation
}

func newMemInvitationRepo() *memInvitationRepo {
	return &memInvitationRepo{invitations: map[string]*entity.Invitation{}}
}

func (r *memInvitationRepo) Create(inv *entity.Invitation) error { r.invitations[inv.ID] = inv; return nil }
func (r *memInvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *memInvitationRepo) GetPendingByEmailAndCompany(email, companyID string) (*entity.Invitation, error) {
	for _, inv := range r.invitations {
		if strings.EqualFold(inv.Email, email) && inv.CompanyID == companyID && inv.Status == entity.InvitationPending {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *memInvitationRepo) Update(inv *entity.Invitation) error { r.invitations[inv.ID] = inv; return nil }
func (r *memInvitationRepo) ListByCompany(companyID string) ([]*entity.Invitation, error) {
	var out []*entity.Invitation
	for _, inv := range r.invitations {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (r *memInvitationRepo) Delete(id string) error { delete(r.invitations, id); return nil }

type memNotifRepo struct {
	created []*entity.Notification
}

func (r *memNotifRepo) Create(n *entity.Notification) error { r.created = append(r.created, n); return nil }
func (r *memNotifRepo) ListByUser(userID string, onlyUnread bool, _, _ int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.created {
		if n.UserID == userID && (!onlyUnread || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}
func (r *memNotifRepo) MarkRead(userID, id string) error {
	for _, n := range r.created {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}
func (r *memNotifRepo) MarkAllRead(userID string) error {
	for _, n := range r.created {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}
func (r *memNotifRepo) Delete(userID, id string) error {
	for i, n := range r.created {
		if n.ID == id && n.UserID == userID {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memLocationRepo struct {
	locations map[string]*entity.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{locations: map[string]*entity.Location{}}
}

func (r *memLocationRepo) Create(l *entity.Location) error { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) ListByUser(userID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *memLocationRepo) ListByCompany(companyID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		if l.CompanyID != nil && *l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *memLocationRepo) Delete(id, userID string, companyID *string) error {
	l, ok := r.locations[id]
	if !ok {
		return domain.ErrNotFound
	}
	propia := l.UserID == userID
	delEquipo := companyID != nil && l.CompanyID != nil && *l.CompanyID == *companyID
	if !propia && !delEquipo {
		return domain.ErrNotFound
	}
	delete(r.locations, id)
	return nil
}
