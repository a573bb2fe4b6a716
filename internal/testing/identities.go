package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/scplayer/internal/models"
	"github.com/desertthunder/scplayer/internal/shared"
)

// MemoryIdentityStore is an in-memory identity store that records how often it is used.
//
// Stored identities are copies, so later changes to a saved identity are only visible after another Save.
type MemoryIdentityStore struct {
	mu         sync.Mutex
	identities map[string]*models.SocialIdentity
	nextID     int

	// SaveErr, when set, is returned by Save without storing anything.
	SaveErr error

	FindCalls   int
	SaveCalls   int
	DeleteCalls int
}

func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{identities: map[string]*models.SocialIdentity{}}
}

// Put stores identity without counting a Save.
func (m *MemoryIdentityStore) Put(identity *models.SocialIdentity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(identity)
}

func (m *MemoryIdentityStore) Find(ctx context.Context, userID, provider string) (*models.SocialIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++

	for _, identity := range m.identities {
		if identity.UserID() == userID && identity.Provider() == provider {
			return cloneIdentity(identity), nil
		}
	}
	return nil, fmt.Errorf("%w: %s identity for user %s", shared.ErrNotFound, provider, userID)
}

func (m *MemoryIdentityStore) FindByUID(ctx context.Context, provider, uid string) (*models.SocialIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++

	for _, identity := range m.identities {
		if identity.Provider() == provider && identity.UID() == uid {
			return cloneIdentity(identity), nil
		}
	}
	return nil, fmt.Errorf("%w: %s identity %s", shared.ErrNotFound, provider, uid)
}

func (m *MemoryIdentityStore) Save(ctx context.Context, identity *models.SocialIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.put(identity)
	return nil
}

func (m *MemoryIdentityStore) Delete(ctx context.Context, identity *models.SocialIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++

	if _, ok := m.identities[identity.ID()]; !ok {
		return fmt.Errorf("%w: identity %s", shared.ErrNotFound, identity.ID())
	}
	delete(m.identities, identity.ID())
	return nil
}

// Stored returns a copy of the identity saved under id, or nil.
func (m *MemoryIdentityStore) Stored(id string) *models.SocialIdentity {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.identities[id]
	if !ok {
		return nil
	}
	return cloneIdentity(identity)
}

// Len returns the number of stored identities.
func (m *MemoryIdentityStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.identities)
}

func (m *MemoryIdentityStore) put(identity *models.SocialIdentity) {
	if identity.ID() == "" {
		m.nextID++
		identity.SetID(fmt.Sprintf("identity-%d", m.nextID))
	}
	m.identities[identity.ID()] = cloneIdentity(identity)
}

func cloneIdentity(identity *models.SocialIdentity) *models.SocialIdentity {
	c := models.NewSocialIdentity(identity.UserID(), identity.Provider(), identity.UID())
	c.SetID(identity.ID())
	c.SetExtraData(identity.ExtraData())
	c.SetCreatedAt(identity.CreatedAt())
	c.SetUpdatedAt(identity.UpdatedAt())
	return c
}
