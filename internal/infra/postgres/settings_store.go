package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"funnelpress/internal/domain"
)

// SettingsStore persists pixels, CTA URLs and serving domains as flat
// rows.
type SettingsStore struct {
	pool *pgxpool.Pool
}

func NewSettingsStore(pool *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{pool: pool}
}

func (s *SettingsStore) ListPixels(ctx context.Context) ([]domain.Pixel, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, provider, pixel_id, enabled FROM pixels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list pixels: %w", err)
	}
	defer rows.Close()

	var out []domain.Pixel
	for rows.Next() {
		var p domain.Pixel
		var provider string
		if err := rows.Scan(&p.ID, &provider, &p.PixelID, &p.Enabled); err != nil {
			return nil, fmt.Errorf("scan pixel: %w", err)
		}
		p.Provider = domain.PixelProvider(provider)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SettingsStore) PutPixel(ctx context.Context, p domain.Pixel) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pixels (id, provider, pixel_id, enabled) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET provider=EXCLUDED.provider, pixel_id=EXCLUDED.pixel_id, enabled=EXCLUDED.enabled`,
		p.ID, string(p.Provider), p.PixelID, p.Enabled)
	if err != nil {
		return fmt.Errorf("save pixel: %w", err)
	}
	return nil
}

func (s *SettingsStore) DeletePixel(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM pixels WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete pixel: %w", err)
	}
	return nil
}

func (s *SettingsStore) ListCTAUrls(ctx context.Context) ([]domain.CTAUrl, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, url, is_default FROM cta_urls ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list cta urls: %w", err)
	}
	defer rows.Close()

	var out []domain.CTAUrl
	for rows.Next() {
		var u domain.CTAUrl
		if err := rows.Scan(&u.ID, &u.Name, &u.URL, &u.IsDefault); err != nil {
			return nil, fmt.Errorf("scan cta url: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SettingsStore) PutCTAUrl(ctx context.Context, u domain.CTAUrl) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cta_urls (id, name, url, is_default) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, url=EXCLUDED.url, is_default=EXCLUDED.is_default`,
		u.ID, u.Name, u.URL, u.IsDefault)
	if err != nil {
		return fmt.Errorf("save cta url: %w", err)
	}
	return nil
}

func (s *SettingsStore) DeleteCTAUrl(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM cta_urls WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete cta url: %w", err)
	}
	return nil
}

func (s *SettingsStore) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, hostname, verified, is_default FROM domains ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	var out []domain.Domain
	for rows.Next() {
		var d domain.Domain
		if err := rows.Scan(&d.ID, &d.Hostname, &d.Verified, &d.IsDefault); err != nil {
			return nil, fmt.Errorf("scan domain: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SettingsStore) PutDomain(ctx context.Context, d domain.Domain) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO domains (id, hostname, verified, is_default) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET hostname=EXCLUDED.hostname, verified=EXCLUDED.verified, is_default=EXCLUDED.is_default`,
		d.ID, d.Hostname, d.Verified, d.IsDefault)
	if err != nil {
		return fmt.Errorf("save domain: %w", err)
	}
	return nil
}

func (s *SettingsStore) DeleteDomain(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM domains WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	return nil
}
