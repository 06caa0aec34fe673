package erp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/pm-tools/project-pulse/pkg/models/store"
)

// ErrNotFound marks a 404 from the ERP, which for optional surfaces means
// "not installed" rather than a transport problem.
var ErrNotFound = errors.New("erp: not found")

const dateFormat = "2006-01-02"

// Client covers the ERP operations the analytics engine depends on.
// Implementations must be safe for concurrent use.
type Client interface {
	// Probe issues a minimal read against the timesheet surface. A nil
	// error means the extended API is installed for this company.
	Probe(ctx context.Context) error
	ListProjects(ctx context.Context) ([]store.Project, error)
	ListResources(ctx context.Context) ([]store.Resource, error)
	ListTimesheets(ctx context.Context, resourceNo string, since time.Time) ([]store.Timesheet, error)
	ListTimesheetLines(ctx context.Context, timesheetNo string) ([]store.TimesheetLine, error)
	ListTimesheetDetails(ctx context.Context, timesheetNo string, lineNo int) ([]store.TimesheetDetail, error)
	ListPlanningLines(ctx context.Context, projectNo string) ([]store.PlanningLine, error)
	ListLedgerEntries(ctx context.Context, projectNo string) ([]store.LedgerEntry, error)
}

type Settings struct {
	BaseURL string
	Token   string
	Company string
}

type client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
	company string
}

func NewClient(settings Settings) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil

	return &client{
		http:    rc,
		baseURL: settings.BaseURL,
		token:   settings.Token,
		company: settings.Company,
	}
}

// listEnvelope is the OData-style collection wrapper the ERP returns.
type listEnvelope[T any] struct {
	Value []T `json:"value"`
}

func (c *client) Probe(ctx context.Context) error {
	query := url.Values{}
	query.Set("$top", "1")
	_, err := c.get(ctx, "timesheets", query)
	return err
}

func (c *client) ListProjects(ctx context.Context) ([]store.Project, error) {
	return getList[store.Project](ctx, c, "projects", url.Values{})
}

func (c *client) ListResources(ctx context.Context) ([]store.Resource, error) {
	return getList[store.Resource](ctx, c, "resources", url.Values{})
}

func (c *client) ListTimesheets(
	ctx context.Context,
	resourceNo string,
	since time.Time,
) ([]store.Timesheet, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("resourceNumber eq '%s' and startingDate ge %s",
		escapeODataString(resourceNo), since.Format(dateFormat)))
	return getList[store.Timesheet](ctx, c, "timesheets", query)
}

func (c *client) ListTimesheetLines(ctx context.Context, timesheetNo string) ([]store.TimesheetLine, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("timeSheetNumber eq '%s'", escapeODataString(timesheetNo)))
	return getList[store.TimesheetLine](ctx, c, "timesheetLines", query)
}

func (c *client) ListTimesheetDetails(
	ctx context.Context,
	timesheetNo string,
	lineNo int,
) ([]store.TimesheetDetail, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("timeSheetNumber eq '%s' and timeSheetLineNumber eq %d",
		escapeODataString(timesheetNo), lineNo))
	return getList[store.TimesheetDetail](ctx, c, "timesheetDetails", query)
}

func (c *client) ListPlanningLines(ctx context.Context, projectNo string) ([]store.PlanningLine, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("jobNumber eq '%s'", escapeODataString(projectNo)))
	return getList[store.PlanningLine](ctx, c, "planningLines", query)
}

func (c *client) ListLedgerEntries(ctx context.Context, projectNo string) ([]store.LedgerEntry, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("jobNumber eq '%s'", escapeODataString(projectNo)))
	return getList[store.LedgerEntry](ctx, c, "ledgerEntries", query)
}

func getList[T any](ctx context.Context, c *client, entity string, query url.Values) ([]T, error) {
	body, err := c.get(ctx, entity, query)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", entity, err)
	}
	return envelope.Value, nil
}

func (c *client) get(ctx context.Context, entity string, query url.Values) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	endpoint := fmt.Sprintf("%s/companies('%s')/%s", c.baseURL, url.PathEscape(c.company), entity)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", entity, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", entity, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Str("entity", entity).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s request returned status %d", entity, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", entity, err)
	}

	logger.Debug().
		Str("entity", entity).
		Int("bytes", len(body)).
		Msg("erp fetch completed")

	return body, nil
}

// escapeODataString doubles single quotes per the OData literal rules.
func escapeODataString(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\'' {
			out = append(out, '\'')
		}
		out = append(out, r)
	}
	return string(out)
}
