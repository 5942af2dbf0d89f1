package memory

import (
	"context"
	"sort"
	"sync"

	domainblock "staybook/internal/domain/block"
	domainbooking "staybook/internal/domain/booking"
	domainguest "staybook/internal/domain/guest"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
)

// PropertyRepository is an in-memory implementation used by tests and the
// default zero-config run mode. Values are stored by copy so callers cannot
// mutate repository state through returned pointers.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.PropertyID]domainproperty.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[domainproperty.PropertyID]domainproperty.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainproperty.ErrPropertyNotFound
	}
	return &p, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id domainproperty.PropertyID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = *p
	return nil
}

func (r *PropertyRepository) List(ctx context.Context) ([]*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainproperty.Property, 0, len(r.items))
	for _, p := range r.items {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type OwnerRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.OwnerID]domainproperty.Owner
}

func NewOwnerRepository() *OwnerRepository {
	return &OwnerRepository{items: make(map[domainproperty.OwnerID]domainproperty.Owner)}
}

func (r *OwnerRepository) ByID(ctx context.Context, id domainproperty.OwnerID) (*domainproperty.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.items[id]
	if !ok {
		return nil, domainproperty.ErrOwnerNotFound
	}
	return &o, nil
}

func (r *OwnerRepository) Save(ctx context.Context, o *domainproperty.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[o.ID] = *o
	return nil
}

func (r *OwnerRepository) List(ctx context.Context) ([]*domainproperty.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainproperty.Owner, 0, len(r.items))
	for _, o := range r.items {
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

// GuestRepository enforces email uniqueness with an email index maintained
// under the write lock, the memory stand-in for Mongo's unique email index:
// Save rejects an email already owned by a different id in the same critical
// section that inserts.
type GuestRepository struct {
	mu      sync.RWMutex
	items   map[domainguest.GuestID]domainguest.Guest
	byEmail map[string]domainguest.GuestID
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{
		items:   make(map[domainguest.GuestID]domainguest.Guest),
		byEmail: make(map[string]domainguest.GuestID),
	}
}

func (r *GuestRepository) ByID(ctx context.Context, id domainguest.GuestID) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.items[id]
	if !ok {
		return nil, domainguest.ErrGuestNotFound
	}
	return &g, nil
}

func (r *GuestRepository) ByEmail(ctx context.Context, email string) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domainguest.ErrGuestNotFound
	}
	g := r.items[id]
	return &g, nil
}

func (r *GuestRepository) Save(ctx context.Context, g *domainguest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if otherID, ok := r.byEmail[g.Email]; ok && otherID != g.ID {
		return domainguest.ErrEmailTaken
	}
	if prev, ok := r.items[g.ID]; ok && prev.Email != g.Email {
		delete(r.byEmail, prev.Email)
	}
	r.items[g.ID] = *g
	r.byEmail[g.Email] = g.ID
	return nil
}

func (r *GuestRepository) List(ctx context.Context) ([]*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainguest.Guest, 0, len(r.items))
	for _, g := range r.items {
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	c := b
	return &c, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *b
	stored.ClearEvents()
	r.items[b.ID] = stored
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id domainbooking.BookingID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainbooking.ErrBookingNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *BookingRepository) ListByProperty(ctx context.Context, propertyID domainproperty.PropertyID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.PropertyID == propertyID {
			c := b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID domainguest.GuestID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.GuestID == guestID {
			c := b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) ConfirmedOverlapping(ctx context.Context, propertyID domainproperty.PropertyID, rng daterange.DateRange, exclude domainbooking.BookingID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.PropertyID != propertyID || b.Status != domainbooking.StatusConfirmed {
			continue
		}
		if exclude != "" && b.ID == exclude {
			continue
		}
		if b.Range.Overlaps(rng) {
			c := b
			out = append(out, &c)
		}
	}
	return out, nil
}

type BlockRepository struct {
	mu    sync.RWMutex
	items map[domainblock.BlockID]domainblock.Block
}

func NewBlockRepository() *BlockRepository {
	return &BlockRepository{items: make(map[domainblock.BlockID]domainblock.Block)}
}

func (r *BlockRepository) ByID(ctx context.Context, id domainblock.BlockID) (*domainblock.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainblock.ErrBlockNotFound
	}
	c := b
	return &c, nil
}

func (r *BlockRepository) Save(ctx context.Context, b *domainblock.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *b
	stored.ClearEvents()
	r.items[b.ID] = stored
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, id domainblock.BlockID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainblock.ErrBlockNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *BlockRepository) ListByProperty(ctx context.Context, propertyID domainproperty.PropertyID) ([]*domainblock.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainblock.Block, 0)
	for _, b := range r.items {
		if b.PropertyID == propertyID {
			c := b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BlockRepository) Overlapping(ctx context.Context, propertyID domainproperty.PropertyID, rng daterange.DateRange, exclude domainblock.BlockID) ([]*domainblock.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainblock.Block, 0)
	for _, b := range r.items {
		if b.PropertyID != propertyID {
			continue
		}
		if exclude != "" && b.ID == exclude {
			continue
		}
		if b.Range.Overlaps(rng) {
			c := b
			out = append(out, &c)
		}
	}
	return out, nil
}
