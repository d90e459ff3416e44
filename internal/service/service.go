package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/misshanya/shortlink/internal/errorz"
	"github.com/misshanya/shortlink/internal/models"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	TopicMappingCreated = "shortener.mapping_created"
	TopicMappingDeleted = "shortener.mapping_deleted"

	MaxPageLimit = 100
)

type mappingStore interface {
	Get(ctx context.Context, id int64) (*models.URLMapping, error)
	GetByOriginalURL(ctx context.Context, originalURL string) (*models.URLMapping, error)
	GetByShortCode(ctx context.Context, shortCode string) (*models.URLMapping, error)
	GetPage(ctx context.Context, page, limit int) ([]models.URLMapping, error)
	Add(ctx context.Context, mapping *models.URLMapping) (*models.URLMapping, error)
	Delete(ctx context.Context, mapping *models.URLMapping) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// Cache holds short code -> original URL pairs. GetURLByCode returns
// an empty string on miss.
type Cache interface {
	GetURLByCode(ctx context.Context, code string) (string, error)
	SetURL(ctx context.Context, code, url string, ttl time.Duration) error
	DeleteCode(ctx context.Context, code string) error
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type metricsProvider interface {
	Create()
	Resolve()
	Collision()
	SetMappings(n int64)
}

type Config struct {
	CodeLength int
	// BaseURL is prepended to a short code to build the short URL.
	BaseURL  string
	CacheTTL time.Duration
}

type Service struct {
	store mappingStore
	cache Cache       // optional
	kw    KafkaWriter // optional
	m     metricsProvider
	l     *slog.Logger
	t     trace.Tracer

	codeLength int
	baseURL    string
	cacheTTL   time.Duration

	newCode func(n int) string
}

// New creates the mapping service. cache and kw may be nil.
func New(
	store mappingStore,
	cache Cache,
	kw KafkaWriter,
	m metricsProvider,
	l *slog.Logger,
	t trace.Tracer,
	cfg Config,
) *Service {
	return &Service{
		store: store,
		cache: cache,
		kw:    kw,
		m:     m,
		l:     l,
		t:     t,

		codeLength: cfg.CodeLength,
		baseURL:    cfg.BaseURL,
		cacheTTL:   cfg.CacheTTL,

		newCode: randomCode,
	}
}

// CreateShortCode returns the short URL for originalURL, creating a mapping
// if the URL is new. A taken candidate code is regenerated once; if the
// insert still collides, errorz.ErrDuplicate is returned.
func (s *Service) CreateShortCode(ctx context.Context, originalURL string) (string, error) {
	ctx, span := s.t.Start(ctx, "CreateShortCode")
	defer span.End()

	// Same URL always gets the same code
	ctxExisting, spanExisting := s.t.Start(ctx, "Get mapping by original URL")
	existing, err := s.store.GetByOriginalURL(ctxExisting, originalURL)
	spanExisting.End()
	if err == nil {
		span.SetAttributes(attribute.Bool("existing", true))
		return s.ShortURL(existing.ShortCode), nil
	} else if !errors.Is(err, errorz.ErrNotFound) {
		s.l.Error("failed to get mapping by url", slog.Any("error", err))
		return "", fmt.Errorf("failed to get mapping by url: %w", err)
	}

	code := s.newCode(s.codeLength)

	ctxCollision, spanCollision := s.t.Start(ctx, "Check short code collision")
	_, err = s.store.GetByShortCode(ctxCollision, code)
	spanCollision.End()
	if err == nil {
		s.l.Warn("generated short code is taken, regenerating", slog.String("code", code))
		s.m.Collision()
		code = s.newCode(s.codeLength)
	} else if !errors.Is(err, errorz.ErrNotFound) {
		s.l.Error("failed to check short code", slog.Any("error", err))
		return "", fmt.Errorf("failed to check short code: %w", err)
	}

	s.l.Info("shortening url", slog.String("url", originalURL), slog.String("code", code))

	ctxAdd, spanAdd := s.t.Start(ctx, "Store mapping")
	mapping, err := s.store.Add(ctxAdd, &models.URLMapping{OriginalURL: originalURL, ShortCode: code})
	spanAdd.End()
	if err != nil {
		if errors.Is(err, errorz.ErrConstraintViolation) {
			s.l.Warn("mapping collided on insert",
				slog.String("url", originalURL),
				slog.String("code", code),
				slog.Any("error", err),
			)
			return "", errorz.ErrDuplicate
		}
		s.l.Error("failed to store mapping", slog.Any("error", err))
		return "", fmt.Errorf("failed to store mapping: %w", err)
	}

	s.m.Create()
	s.cacheURL(ctx, mapping.ShortCode, mapping.OriginalURL)

	if s.kw != nil {
		go s.sendToKafka(context.WithoutCancel(ctx), TopicMappingCreated, models.KafkaMessageMappingCreated{
			EventID:     uuid.NewString(),
			ID:          mapping.ID,
			OriginalURL: mapping.OriginalURL,
			ShortCode:   mapping.ShortCode,
			CreatedAt:   time.Now().UTC(),
		})
	}

	return s.ShortURL(mapping.ShortCode), nil
}

// GetOriginalURL resolves shortCode. Unknown codes return errorz.ErrMissing.
func (s *Service) GetOriginalURL(ctx context.Context, shortCode string) (string, error) {
	ctx, span := s.t.Start(ctx, "GetOriginalURL")
	defer span.End()

	if s.cache != nil {
		ctxCache, spanCache := s.t.Start(ctx, "Get URL from cache")
		url, err := s.cache.GetURLByCode(ctxCache, shortCode)
		spanCache.End()
		if err != nil {
			s.l.Warn("failed to get url from cache", slog.Any("error", err))
		} else if url != "" {
			span.SetAttributes(attribute.Bool("cached", true))
			s.m.Resolve()
			return url, nil
		}
	}

	ctxStore, spanStore := s.t.Start(ctx, "Get mapping by short code")
	mapping, err := s.store.GetByShortCode(ctxStore, shortCode)
	spanStore.End()
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return "", errorz.ErrMissing
		}
		s.l.Error("failed to get mapping by short code", slog.Any("error", err))
		return "", fmt.Errorf("failed to get mapping by short code: %w", err)
	}

	s.m.Resolve()
	s.cacheURL(ctx, mapping.ShortCode, mapping.OriginalURL)

	return mapping.OriginalURL, nil
}

// ListMappings returns a 1-indexed page of mappings ordered by id.
func (s *Service) ListMappings(ctx context.Context, page, limit int) ([]models.URLMapping, error) {
	ctx, span := s.t.Start(ctx, "ListMappings")
	defer span.End()

	if page < 1 || limit < 1 || limit > MaxPageLimit {
		return nil, errorz.ErrInvalidPage
	}

	mappings, err := s.store.GetPage(ctx, page, limit)
	if err != nil {
		s.l.Error("failed to get mappings page", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get mappings page: %w", err)
	}

	return mappings, nil
}

// DeleteMapping removes the mapping with the given id and evicts its code
// from the cache. Unknown ids return errorz.ErrNotFound.
func (s *Service) DeleteMapping(ctx context.Context, id int64) error {
	ctx, span := s.t.Start(ctx, "DeleteMapping")
	defer span.End()

	mapping, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return errorz.ErrNotFound
		}
		s.l.Error("failed to get mapping", slog.Any("error", err))
		return fmt.Errorf("failed to get mapping: %w", err)
	}

	if err := s.store.Delete(ctx, mapping); err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return errorz.ErrNotFound
		}
		s.l.Error("failed to delete mapping", slog.Any("error", err))
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	s.l.Info("deleted mapping",
		slog.Int64("id", mapping.ID),
		slog.String("code", mapping.ShortCode),
	)

	if s.cache != nil {
		if err := s.cache.DeleteCode(ctx, mapping.ShortCode); err != nil {
			s.l.Warn("failed to evict code from cache", slog.Any("error", err))
		}
	}

	if s.kw != nil {
		go s.sendToKafka(context.WithoutCancel(ctx), TopicMappingDeleted, models.KafkaMessageMappingDeleted{
			EventID:     uuid.NewString(),
			ID:          mapping.ID,
			OriginalURL: mapping.OriginalURL,
			ShortCode:   mapping.ShortCode,
			DeletedAt:   time.Now().UTC(),
		})
	}

	return nil
}

func (s *Service) CountMappings(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// ReportMappings updates the mappings gauge on every tick until ctx is done.
func (s *Service) ReportMappings(ctx context.Context, tick <-chan struct{}) {
	for {
		select {
		case <-tick:
			func() {
				ctxCount, span := s.t.Start(ctx, "ReportMappings")
				defer span.End()

				count, err := s.CountMappings(ctxCount)
				if err != nil {
					s.l.Error("failed to count mappings", slog.Any("error", err))
					return
				}
				s.m.SetMappings(count)
			}()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ShortURL builds the public short URL for code.
func (s *Service) ShortURL(code string) string {
	return s.baseURL + code
}

func (s *Service) cacheURL(ctx context.Context, code, url string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetURL(ctx, code, url, s.cacheTTL); err != nil {
		s.l.Warn("failed to cache url", slog.Any("error", err))
	}
}

func (s *Service) sendToKafka(ctx context.Context, topic string, payload any) {
	ctx, span := s.t.Start(ctx, "Send event to Kafka")
	defer span.End()

	msg, err := json.Marshal(payload)
	if err != nil {
		s.l.Error("failed to marshal event", slog.String("topic", topic), slog.Any("error", err))
		return
	}

	// Inject trace from context into carrier
	carrier := propagation.MapCarrier{}
	propagator := propagation.TraceContext{}
	propagator.Inject(ctx, carrier)

	headers := make([]kafka.Header, 0, len(carrier.Keys()))
	for _, key := range carrier.Keys() {
		headers = append(headers, kafka.Header{
			Key:   key,
			Value: []byte(carrier.Get(key)),
		})
	}

	if err := s.kw.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Headers: headers,
		Value:   msg,
	}); err != nil {
		s.l.Error("failed to write event to Kafka", slog.String("topic", topic), slog.Any("error", err))
	}
}
