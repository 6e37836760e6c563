package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/tournament-aggregator/models"
)

// Ошибки границы с удалёнными сервисами.
var (
	// Запись не найдена на стороне matches-service (HTTP 404).
	ErrNotFound = errors.New("match record not found")
	// Любой другой сбой удалённого сервиса: сеть, таймаут, не-2xx ответ.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)

const finalQuarterDurationSeconds = 600

// MatchAPI даёт типизированный доступ к matches-service. Бизнес-логики здесь нет:
// сервисный слой зависит от этого интерфейса, а не от конкретного HTTP-клиента.
type MatchAPI interface {
	// FetchByID возвращает запись матча или ErrNotFound / ErrRemoteUnavailable.
	FetchByID(ctx context.Context, id int) (*models.MatchRecord, error)
	// Create создаёт запись матча и возвращает её id. Любой сбой даёт 0, не
	// ошибка: неудача создания не должна ронять путь чтения.
	Create(ctx context.Context, homeTeamID, awayTeamID int, scheduledAt time.Time) int
	// MarkFinished помечает матч завершённым. Fire-and-forget: ошибки
	// логируются и проглатываются.
	MarkFinished(ctx context.Context, id int, homeScore, awayScore *int)
}

type MatchesClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type matchesClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewMatchesClient(cfg MatchesClientConfig, logger *slog.Logger) MatchAPI {
	return &matchesClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (c *matchesClient) FetchByID(ctx context.Context, id int) (*models.MatchRecord, error) {
	url := fmt.Sprintf("%s/matches/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRemoteUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrRemoteUnavailable, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, id)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: GET %s returned %d", ErrRemoteUnavailable, url, resp.StatusCode)
	}

	var record models.MatchRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: decode match %d: %v", ErrRemoteUnavailable, id, err)
	}
	return &record, nil
}

type createMatchRequest struct {
	HomeTeamID             int    `json:"homeTeamId"`
	AwayTeamID             int    `json:"awayTeamId"`
	Date                   string `json:"date"`
	Time                   string `json:"time"`
	QuarterDurationSeconds int    `json:"quarterDurationSeconds"`
}

func (c *matchesClient) Create(ctx context.Context, homeTeamID, awayTeamID int, scheduledAt time.Time) int {
	utc := scheduledAt.UTC()
	payload := createMatchRequest{
		HomeTeamID:             homeTeamID,
		AwayTeamID:             awayTeamID,
		Date:                   utc.Format("2006-01-02"),
		Time:                   utc.Format("15:04"),
		QuarterDurationSeconds: finalQuarterDurationSeconds,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("unable to encode match creation payload", slog.Any("error", err))
		return 0
	}

	url := c.baseURL + "/matches"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("unable to build match creation request", slog.Any("error", err))
		return 0
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("unable to schedule match", slog.Any("error", err))
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("matches-service rejected match creation",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(text)))
		return 0
	}

	var created struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.logger.Warn("unable to decode match creation response", slog.Any("error", err))
		return 0
	}
	return created.ID
}

type finishMatchRequest struct {
	HomeScore *int `json:"homeScore,omitempty"`
	AwayScore *int `json:"awayScore,omitempty"`
}

func (c *matchesClient) MarkFinished(ctx context.Context, id int, homeScore, awayScore *int) {
	body, err := json.Marshal(finishMatchRequest{HomeScore: homeScore, AwayScore: awayScore})
	if err != nil {
		c.logger.Warn("unable to encode finish payload", slog.Int("match_id", id), slog.Any("error", err))
		return
	}

	url := fmt.Sprintf("%s/matches/%d/finish", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("unable to build finish request", slog.Int("match_id", id), slog.Any("error", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("finish match call failed", slog.Int("match_id", id), slog.Any("error", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("matches-service rejected finish",
			slog.Int("match_id", id),
			slog.Int("status", resp.StatusCode))
	}
}
