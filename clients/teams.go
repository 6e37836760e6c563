package clients

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/tournament-aggregator/models"
)

// TeamAPI даёт доступ к каталогу команд teams-service. Используется только для
// обогащения отображаемых данных, поэтому контракт best-effort: при любом сбое
// возвращается пустой список, а не ошибка.
type TeamAPI interface {
	List(ctx context.Context) []models.RawTeam
}

type TeamsClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type teamsClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewTeamsClient(cfg TeamsClientConfig, logger *slog.Logger) TeamAPI {
	return &teamsClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (c *teamsClient) List(ctx context.Context) []models.RawTeam {
	url := c.baseURL + "/teams?page=0&size=200"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("unable to build teams request", slog.Any("error", err))
		return []models.RawTeam{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("teams fetch failed", slog.Any("error", err))
		return []models.RawTeam{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("teams-service returned non-2xx", slog.Int("status", resp.StatusCode))
		return []models.RawTeam{}
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("unable to decode teams payload", slog.Any("error", err))
		return []models.RawTeam{}
	}

	teams := parseTeamsPayload(payload)
	if teams == nil {
		c.logger.Warn("teams payload has unexpected shape")
		return []models.RawTeam{}
	}
	return teams
}

// parseTeamsPayload принимает голый массив команд либо обёртки
// {"content":[...]} / {"data":[...]}: teams-service менял формат между версиями.
func parseTeamsPayload(payload json.RawMessage) []models.RawTeam {
	var direct []models.RawTeam
	if err := json.Unmarshal(payload, &direct); err == nil {
		return direct
	}

	var wrapped struct {
		Content []models.RawTeam `json:"content"`
		Data    []models.RawTeam `json:"data"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return nil
	}
	if wrapped.Content != nil {
		return wrapped.Content
	}
	if wrapped.Data != nil {
		return wrapped.Data
	}
	return nil
}
