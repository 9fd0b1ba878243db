package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tracklet/tracklet/tracker"
)

/* Redis implementation of tracker.Repository
 * Uses Redis Hashes for entities and Sets for indexes. The dataset is a
 * single user's tracking history, so list queries load from the index
 * and filter in memory.
 */

const (
	clientPrefix  = "client"  // Hash naming: client:{id}
	projectPrefix = "project" // Hash naming: project:{id}
	entryPrefix   = "entry"   // Hash naming: entry:{id}

	clientIndexKey  = "clients"
	projectIndexKey = "projects"
	entryIndexKey   = "entries"

	// project:{id}:entries indexes entries per project
	projectEntriesSuffix = "entries"

	// timer:current holds the id of the running entry
	currentEntryKey = "timer:current"
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{client: client}, nil
}

// NewRepositoryWithClient wraps an existing client (shared across repositories)
func NewRepositoryWithClient(client *redis.Client) *Repository {
	return &Repository{client: client}
}

// StoreClient stores a client hash and indexes its id
func (r *Repository) StoreClient(ctx context.Context, c tracker.Client) (string, error) {
	hashKey := fmt.Sprintf("%s:%s", clientPrefix, c.ID)

	err := r.client.HSet(ctx, hashKey, map[string]interface{}{
		"id":          c.ID,
		"name":        c.Name,
		"color":       c.Color,
		"hourly_rate": c.HourlyRate,
		"created_at":  c.CreatedAt.Unix(),
		"updated_at":  c.UpdatedAt.Unix(),
	}).Err()
	if err != nil {
		return "", fmt.Errorf("storing client: %w", err)
	}

	if err := r.client.SAdd(ctx, clientIndexKey, c.ID).Err(); err != nil {
		return "", fmt.Errorf("indexing client: %w", err)
	}
	return c.ID, nil
}

// GetClient retrieves a client by ID
func (r *Repository) GetClient(ctx context.Context, id string) (tracker.Client, error) {
	data, err := r.client.HGetAll(ctx, fmt.Sprintf("%s:%s", clientPrefix, id)).Result()
	if err != nil {
		return tracker.Client{}, fmt.Errorf("getting client: %w", err)
	}
	if len(data) == 0 {
		return tracker.Client{}, fmt.Errorf("%w: client %s", tracker.ErrNotFound, id)
	}

	return tracker.Client{
		ID:         data["id"],
		Name:       data["name"],
		Color:      data["color"],
		HourlyRate: parseFloat64(data["hourly_rate"]),
		CreatedAt:  time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt:  time.Unix(parseInt64(data["updated_at"]), 0),
	}, nil
}

// ListClients returns all clients
func (r *Repository) ListClients(ctx context.Context) ([]tracker.Client, error) {
	ids, err := r.client.SMembers(ctx, clientIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	clients := make([]tracker.Client, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetClient(ctx, id)
		if err != nil {
			continue
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// UpdateClient overwrites a client hash in place
func (r *Repository) UpdateClient(ctx context.Context, c tracker.Client) error {
	if _, err := r.GetClient(ctx, c.ID); err != nil {
		return err
	}
	if _, err := r.StoreClient(ctx, c); err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return nil
}

// DeleteClient removes a client hash and its index entry
func (r *Repository) DeleteClient(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, fmt.Sprintf("%s:%s", clientPrefix, id)).Err(); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if err := r.client.SRem(ctx, clientIndexKey, id).Err(); err != nil {
		return fmt.Errorf("removing client index: %w", err)
	}
	return nil
}

// StoreProject stores a project hash and indexes its id
func (r *Repository) StoreProject(ctx context.Context, p tracker.Project) (string, error) {
	hashKey := fmt.Sprintf("%s:%s", projectPrefix, p.ID)

	err := r.client.HSet(ctx, hashKey, map[string]interface{}{
		"id":          p.ID,
		"client_id":   p.ClientID,
		"name":        p.Name,
		"description": p.Description,
		"hourly_rate": p.HourlyRate,
		"created_at":  p.CreatedAt.Unix(),
		"updated_at":  p.UpdatedAt.Unix(),
	}).Err()
	if err != nil {
		return "", fmt.Errorf("storing project: %w", err)
	}

	if err := r.client.SAdd(ctx, projectIndexKey, p.ID).Err(); err != nil {
		return "", fmt.Errorf("indexing project: %w", err)
	}
	return p.ID, nil
}

// GetProject retrieves a project by ID
func (r *Repository) GetProject(ctx context.Context, id string) (tracker.Project, error) {
	data, err := r.client.HGetAll(ctx, fmt.Sprintf("%s:%s", projectPrefix, id)).Result()
	if err != nil {
		return tracker.Project{}, fmt.Errorf("getting project: %w", err)
	}
	if len(data) == 0 {
		return tracker.Project{}, fmt.Errorf("%w: project %s", tracker.ErrNotFound, id)
	}

	return tracker.Project{
		ID:          data["id"],
		ClientID:    data["client_id"],
		Name:        data["name"],
		Description: data["description"],
		HourlyRate:  parseFloat64(data["hourly_rate"]),
		CreatedAt:   time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt:   time.Unix(parseInt64(data["updated_at"]), 0),
	}, nil
}

// ListProjects returns all projects
func (r *Repository) ListProjects(ctx context.Context) ([]tracker.Project, error) {
	ids, err := r.client.SMembers(ctx, projectIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects := make([]tracker.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.GetProject(ctx, id)
		if err != nil {
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// UpdateProject overwrites a project hash in place
func (r *Repository) UpdateProject(ctx context.Context, p tracker.Project) error {
	if _, err := r.GetProject(ctx, p.ID); err != nil {
		return err
	}
	if _, err := r.StoreProject(ctx, p); err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// DeleteProject removes a project hash and its index entries
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, fmt.Sprintf("%s:%s", projectPrefix, id)).Err(); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if err := r.client.SRem(ctx, projectIndexKey, id).Err(); err != nil {
		return fmt.Errorf("removing project index: %w", err)
	}
	return nil
}

// StoreEntry stores an entry hash and indexes it globally and per project
func (r *Repository) StoreEntry(ctx context.Context, e tracker.TimeEntry) (string, error) {
	if err := r.writeEntry(ctx, e); err != nil {
		return "", err
	}

	if err := r.client.SAdd(ctx, entryIndexKey, e.ID).Err(); err != nil {
		return "", fmt.Errorf("indexing entry: %w", err)
	}
	projectKey := fmt.Sprintf("%s:%s:%s", projectPrefix, e.ProjectID, projectEntriesSuffix)
	if err := r.client.SAdd(ctx, projectKey, e.ID).Err(); err != nil {
		return "", fmt.Errorf("indexing project entry: %w", err)
	}
	return e.ID, nil
}

// GetEntry retrieves a time entry by ID
func (r *Repository) GetEntry(ctx context.Context, id string) (tracker.TimeEntry, error) {
	data, err := r.client.HGetAll(ctx, fmt.Sprintf("%s:%s", entryPrefix, id)).Result()
	if err != nil {
		return tracker.TimeEntry{}, fmt.Errorf("getting entry: %w", err)
	}
	if len(data) == 0 {
		return tracker.TimeEntry{}, fmt.Errorf("%w: entry %s", tracker.ErrNotFound, id)
	}

	e := tracker.TimeEntry{
		ID:          data["id"],
		ProjectID:   data["project_id"],
		Description: data["description"],
		StartedAt:   time.Unix(parseInt64(data["started_at"]), 0),
		CreatedAt:   time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt:   time.Unix(parseInt64(data["updated_at"]), 0),
	}
	if ts := parseInt64(data["ended_at"]); ts > 0 {
		t := time.Unix(ts, 0)
		e.EndedAt = &t
	}
	return e, nil
}

// ListEntries returns all time entries
func (r *Repository) ListEntries(ctx context.Context) ([]tracker.TimeEntry, error) {
	ids, err := r.client.SMembers(ctx, entryIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return r.entriesByIDs(ctx, ids), nil
}

// ListEntriesByProject returns all entries tracked against a project
func (r *Repository) ListEntriesByProject(ctx context.Context, projectID string) ([]tracker.TimeEntry, error) {
	projectKey := fmt.Sprintf("%s:%s:%s", projectPrefix, projectID, projectEntriesSuffix)
	ids, err := r.client.SMembers(ctx, projectKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing project entries: %w", err)
	}
	return r.entriesByIDs(ctx, ids), nil
}

// ListEntriesStartedBetween returns entries with StartedAt in [from, to)
func (r *Repository) ListEntriesStartedBetween(ctx context.Context, from, to time.Time) ([]tracker.TimeEntry, error) {
	all, err := r.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]tracker.TimeEntry, 0, len(all))
	for _, e := range all {
		if !e.StartedAt.Before(from) && e.StartedAt.Before(to) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// CurrentEntry returns the running entry, or tracker.ErrNoTimer
func (r *Repository) CurrentEntry(ctx context.Context) (tracker.TimeEntry, error) {
	id, err := r.client.Get(ctx, currentEntryKey).Result()
	if err == redis.Nil {
		return tracker.TimeEntry{}, tracker.ErrNoTimer
	}
	if err != nil {
		return tracker.TimeEntry{}, fmt.Errorf("getting current entry id: %w", err)
	}
	return r.GetEntry(ctx, id)
}

// UpdateEntry overwrites an entry hash in place
func (r *Repository) UpdateEntry(ctx context.Context, e tracker.TimeEntry) error {
	if _, err := r.GetEntry(ctx, e.ID); err != nil {
		return err
	}
	if err := r.writeEntry(ctx, e); err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry hash and its index entries
func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	e, err := r.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	if err := r.client.Del(ctx, fmt.Sprintf("%s:%s", entryPrefix, id)).Err(); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	r.client.SRem(ctx, entryIndexKey, id)
	projectKey := fmt.Sprintf("%s:%s:%s", projectPrefix, e.ProjectID, projectEntriesSuffix)
	r.client.SRem(ctx, projectKey, id)
	return nil
}

// SetCurrentEntry marks the entry as the running timer
func (r *Repository) SetCurrentEntry(ctx context.Context, id string) error {
	if err := r.client.Set(ctx, currentEntryKey, id, 0).Err(); err != nil {
		return fmt.Errorf("setting current entry: %w", err)
	}
	return nil
}

// ClearCurrentEntry clears the running timer marker
func (r *Repository) ClearCurrentEntry(ctx context.Context) error {
	if err := r.client.Del(ctx, currentEntryKey).Err(); err != nil {
		return fmt.Errorf("clearing current entry: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// Client returns the underlying Redis client for advanced operations
func (r *Repository) Client() *redis.Client {
	return r.client
}

// Helper functions

func (r *Repository) writeEntry(ctx context.Context, e tracker.TimeEntry) error {
	hashKey := fmt.Sprintf("%s:%s", entryPrefix, e.ID)

	endedAt := int64(0)
	if e.EndedAt != nil {
		endedAt = e.EndedAt.Unix()
	}

	err := r.client.HSet(ctx, hashKey, map[string]interface{}{
		"id":          e.ID,
		"project_id":  e.ProjectID,
		"description": e.Description,
		"started_at":  e.StartedAt.Unix(),
		"ended_at":    endedAt,
		"created_at":  e.CreatedAt.Unix(),
		"updated_at":  e.UpdatedAt.Unix(),
	}).Err()
	if err != nil {
		return fmt.Errorf("storing entry: %w", err)
	}
	return nil
}

func (r *Repository) entriesByIDs(ctx context.Context, ids []string) []tracker.TimeEntry {
	entries := make([]tracker.TimeEntry, 0, len(ids))
	for _, id := range ids {
		e, err := r.GetEntry(ctx, id)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func parseInt64(s string) int64 {
	var v int64
	fmt.Sscanf(s, "%d", &v)
	return v
}

func parseFloat64(s string) float64 {
	var v float64
	fmt.Sscanf(s, "%g", &v)
	return v
}
