package repository

import "context"

// AdminPassword returns the current admin credential.
func (r *Repository) AdminPassword(_ context.Context) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.AdminPassword
}

// SetAdminPassword replaces the admin credential and persists it.
func (r *Repository) SetAdminPassword(ctx context.Context, password string) {
	_ = r.Mutate(ctx, func(tx *Tx) error {
		tx.AdminPassword = password
		return nil
	})
}
