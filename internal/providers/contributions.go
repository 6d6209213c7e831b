package providers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/svg153/github-stars-contrib-mcp-server/internal/infrastructure/monitoring"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/stars"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/types"
	"github.com/svg153/github-stars-contrib-mcp-server/internal/utils/urlcheck"
	"go.uber.org/zap"
)

// Contributions provides CRUD, search, export, and stats tools over
// Stars contributions
type Contributions struct {
	adapter *stars.Adapter
	metrics *monitoring.Metrics
	checker *urlcheck.Checker
	logger  *zap.Logger
}

// NewContributions creates the contributions provider
func NewContributions(adapter *stars.Adapter, metrics *monitoring.Metrics, checker *urlcheck.Checker, logger *zap.Logger) *Contributions {
	return &Contributions{
		adapter: adapter,
		metrics: metrics,
		checker: checker,
		logger:  logger.Named("contributions"),
	}
}

// Definition returns service metadata
func (p *Contributions) Definition() types.Service {
	return types.Service{
		ID:          "contributions",
		Name:        "Contributions",
		Description: "Create, update, delete, search, and export GitHub Stars contributions",
		Category:    types.CategoryContributions,
		Capabilities: []string{
			"contribution_crud",
			"batch_create",
			"search",
			"export",
			"statistics",
			"comparison",
		},
		Tools: []types.Tool{
			{
				ID:          "stars.createContribution",
				Name:        "Create Contribution",
				Description: "Create a single contribution",
				Parameters: []types.Parameter{
					{Name: "type", Type: "string", Description: "Contribution type (SPEAKING, BLOGPOST, ...)", Required: true},
					{Name: "date", Type: "string", Description: "ISO date or YYYY-MM-DD", Required: true},
					{Name: "title", Type: "string", Description: "Contribution title", Required: true},
					{Name: "url", Type: "string", Description: "Contribution URL", Required: true},
					{Name: "description", Type: "string", Description: "Contribution description", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "stars.createContributions",
				Name:        "Create Contributions",
				Description: "Create multiple contributions in one call",
				Parameters: []types.Parameter{
					{Name: "contributions", Type: "array", Description: "Array of contribution objects", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "stars.updateContribution",
				Name:        "Update Contribution",
				Description: "Update fields of an existing contribution",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Contribution ID", Required: true},
					{Name: "type", Type: "string", Description: "New contribution type", Required: false},
					{Name: "date", Type: "string", Description: "New date", Required: false},
					{Name: "title", Type: "string", Description: "New title", Required: false},
					{Name: "url", Type: "string", Description: "New URL", Required: false},
					{Name: "description", Type: "string", Description: "New description", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "stars.deleteContribution",
				Name:        "Delete Contribution",
				Description: "Delete a contribution by ID",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Contribution ID", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "stars.searchContributions",
				Name:        "Search Contributions",
				Description: "Filter a user's public contributions by type, title, and date range",
				Parameters: []types.Parameter{
					{Name: "username", Type: "string", Description: "GitHub username to query", Required: true},
					{Name: "type", Type: "string", Description: "Contribution type to match exactly", Required: false},
					{Name: "title_contains", Type: "string", Description: "Case-insensitive title substring", Required: false},
					{Name: "date_from", Type: "string", Description: "Lower date bound, inclusive", Required: false},
					{Name: "date_to", Type: "string", Description: "Upper date bound, inclusive", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "stars.exportContributions",
				Name:        "Export Contributions",
				Description: "Export a user's public contributions as JSON, CSV, or Markdown",
				Parameters: []types.Parameter{
					{Name: "username", Type: "string", Description: "GitHub username to export", Required: true},
					{Name: "format", Type: "string", Description: "json, csv, or markdown (default json)", Required: false},
					{Name: "sort_by", Type: "string", Description: "date, title, or type", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "stars.contributionStats",
				Name:        "Contribution Stats",
				Description: "Totals, per-type breakdown, date range, and optional grouping",
				Parameters: []types.Parameter{
					{Name: "username", Type: "string", Description: "GitHub username to analyze", Required: true},
					{Name: "group_by", Type: "string", Description: "type, month, or year", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "stars.compareContributions",
				Name:        "Compare Contributions",
				Description: "Compare two users' public contributions",
				Parameters: []types.Parameter{
					{Name: "username1", Type: "string", Description: "First GitHub username", Required: true},
					{Name: "username2", Type: "string", Description: "Second GitHub username", Required: true},
					{Name: "metric", Type: "string", Description: "total, by_type, or by_year (omit for detailed)", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute dispatches a contributions tool
func (p *Contributions) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	case "stars.createContribution":
		return p.create(ctx, params)
	case "stars.createContributions":
		return p.createBatch(ctx, params)
	case "stars.updateContribution":
		return p.update(ctx, params)
	case "stars.deleteContribution":
		return p.delete(ctx, params)
	case "stars.searchContributions":
		return p.search(ctx, params)
	case "stars.exportContributions":
		return p.export(ctx, params)
	case "stars.contributionStats":
		return p.stats(ctx, params)
	case "stars.compareContributions":
		return p.compare(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// parseInput builds a validated ContributionInput from raw parameters
func parseInput(obj map[string]interface{}) (types.ContributionInput, error) {
	rawType, err := getString(obj, "type", true)
	if err != nil {
		return types.ContributionInput{}, err
	}
	contribType, err := types.ParseContributionType(rawType)
	if err != nil {
		return types.ContributionInput{}, err
	}

	date, err := getString(obj, "date", true)
	if err != nil {
		return types.ContributionInput{}, err
	}
	title, err := getString(obj, "title", true)
	if err != nil {
		return types.ContributionInput{}, err
	}
	url, err := getString(obj, "url", true)
	if err != nil {
		return types.ContributionInput{}, err
	}
	description, err := getString(obj, "description", false)
	if err != nil {
		return types.ContributionInput{}, err
	}

	input := types.ContributionInput{
		Type:        contribType,
		Date:        date,
		Title:       title,
		URL:         url,
		Description: description,
	}
	if err := input.Validate(); err != nil {
		return types.ContributionInput{}, err
	}
	return input, nil
}

func (p *Contributions) create(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	input, err := parseInput(params)
	if err != nil {
		return failure(err.Error())
	}

	if ok, reason := p.checker.Check(ctx, input.URL); !ok {
		return failure(fmt.Sprintf("url validation failed: %s", reason))
	}

	data, err := p.adapter.CreateContribution(ctx, input)
	if err != nil {
		return failure(err.Error())
	}

	p.metrics.RecordContributionCreated(string(input.Type))
	p.logger.Info("contribution created", zap.String("type", string(input.Type)), zap.String("title", input.Title))
	return success(data)
}

func (p *Contributions) createBatch(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	items := getArray(params, "contributions")
	if len(items) == 0 {
		return failure("contributions array required")
	}

	validated := make([]map[string]interface{}, 0, len(items))
	createdTypes := make([]string, 0, len(items))
	for i, raw := range items {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return failure(fmt.Sprintf("contribution %d must be an object", i))
		}
		input, err := parseInput(obj)
		if err != nil {
			return failure(fmt.Sprintf("contribution %d: %s", i, err.Error()))
		}
		if ok, reason := p.checker.Check(ctx, input.URL); !ok {
			return failure(fmt.Sprintf("contribution %d: url validation failed: %s", i, reason))
		}
		validated = append(validated, input.ToVariables())
		createdTypes = append(createdTypes, string(input.Type))
	}

	data, err := p.adapter.CreateContributions(ctx, validated)
	if err != nil {
		return failure(err.Error())
	}

	for _, t := range createdTypes {
		p.metrics.RecordContributionCreated(t)
	}
	p.logger.Info("contributions created", zap.Int("count", len(validated)))
	return success(data)
}

func (p *Contributions) update(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	id, err := getString(params, "id", true)
	if err != nil {
		return failure(err.Error())
	}

	data := map[string]interface{}{}
	typeLabel := "UNKNOWN"

	if rawType, _ := getString(params, "type", false); rawType != "" {
		contribType, err := types.ParseContributionType(rawType)
		if err != nil {
			return failure(err.Error())
		}
		data["type"] = string(contribType)
		typeLabel = string(contribType)
	}
	if date, _ := getString(params, "date", false); date != "" {
		if _, err := types.ParseDate(date); err != nil {
			return failure(err.Error())
		}
		data["date"] = date
	}
	if title, _ := getString(params, "title", false); title != "" {
		data["title"] = title
	}
	if url, _ := getString(params, "url", false); url != "" {
		if ok, reason := p.checker.Check(ctx, url); !ok {
			return failure(fmt.Sprintf("url validation failed: %s", reason))
		}
		data["url"] = url
	}
	if description, _ := getString(params, "description", false); description != "" {
		data["description"] = description
	}

	if len(data) == 0 {
		return failure("no fields to update")
	}

	result, err := p.adapter.UpdateContribution(ctx, id, data)
	if err != nil {
		return failure(err.Error())
	}

	p.metrics.RecordContributionUpdated(typeLabel)
	p.logger.Info("contribution updated", zap.String("id", id))
	return success(result)
}

func (p *Contributions) delete(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	id, err := getString(params, "id", true)
	if err != nil {
		return failure(err.Error())
	}

	data, err := p.adapter.DeleteContribution(ctx, id)
	if err != nil {
		return failure(err.Error())
	}

	p.metrics.RecordContributionDeleted()
	p.logger.Info("contribution deleted", zap.String("id", id))
	return success(data)
}

// fetchPublic loads a user's public contributions list
func (p *Contributions) fetchPublic(ctx context.Context, username string) ([]interface{}, error) {
	data, err := p.adapter.GetStars(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, _ := data["publicProfile"].(map[string]interface{})
	items, _ := profile["contributions"].([]interface{})
	return items, nil
}

func (p *Contributions) search(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	username, err := getString(params, "username", true)
	if err != nil {
		return failure(err.Error())
	}
	wantType, _ := getString(params, "type", false)
	titleContains, _ := getString(params, "title_contains", false)
	rawFrom, _ := getString(params, "date_from", false)
	rawTo, _ := getString(params, "date_to", false)

	var from, to time.Time
	if rawFrom != "" {
		if from, err = types.ParseDate(rawFrom); err != nil {
			return failure(err.Error())
		}
	}
	if rawTo != "" {
		if to, err = types.ParseDate(rawTo); err != nil {
			return failure(err.Error())
		}
	}

	items, err := p.fetchPublic(ctx, username)
	if err != nil {
		return failure(err.Error())
	}

	matched := make([]interface{}, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if wantType != "" && itemString(item, "type") != wantType {
			continue
		}
		if titleContains != "" && !strings.Contains(strings.ToLower(itemString(item, "title")), strings.ToLower(titleContains)) {
			continue
		}
		if rawFrom != "" || rawTo != "" {
			d, err := types.ParseDate(itemString(item, "date"))
			if err != nil {
				continue
			}
			if rawFrom != "" && d.Before(from) {
				continue
			}
			if rawTo != "" && d.After(to) {
				continue
			}
		}
		matched = append(matched, item)
	}

	p.logger.Info("search completed",
		zap.String("username", username),
		zap.Int("input_count", len(items)),
		zap.Int("matched_count", len(matched)),
	)
	return success(map[string]interface{}{
		"contributions": matched,
		"count":         len(matched),
	})
}

func (p *Contributions) export(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	username, err := getString(params, "username", true)
	if err != nil {
		return failure(err.Error())
	}
	format, _ := getString(params, "format", false)
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" && format != "markdown" {
		return failure("Invalid format. Use: json, csv, or markdown")
	}
	sortBy, _ := getString(params, "sort_by", false)

	items, err := p.fetchPublic(ctx, username)
	if err != nil {
		return failure(err.Error())
	}
	items = sortItems(items, sortBy)

	var content string
	switch format {
	case "json":
		content, err = exportJSON(items)
	case "csv":
		content, err = exportCSV(items)
	case "markdown":
		content = exportMarkdown(items, username)
	}
	if err != nil {
		return failure(fmt.Sprintf("Export failed: %s", err.Error()))
	}

	p.logger.Info("export completed",
		zap.String("username", username),
		zap.String("format", format),
		zap.Int("count", len(items)),
	)
	return success(map[string]interface{}{
		"format":   format,
		"username": username,
		"count":    len(items),
		"content":  content,
	})
}

// sortItems orders contributions by the requested field; date sorts
// newest first
func sortItems(items []interface{}, sortBy string) []interface{} {
	if sortBy == "" || sortBy == "none" {
		return items
	}

	sorted := make([]interface{}, len(items))
	copy(sorted, items)

	key := func(raw interface{}) string {
		item, ok := raw.(map[string]interface{})
		if !ok {
			return ""
		}
		switch sortBy {
		case "date":
			return itemString(item, "date")
		case "title":
			return strings.ToLower(itemString(item, "title"))
		case "type":
			return itemString(item, "type")
		}
		return ""
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sortBy == "date" {
			return key(sorted[i]) > key(sorted[j])
		}
		return key(sorted[i]) < key(sorted[j])
	})
	return sorted
}

func exportJSON(items []interface{}) (string, error) {
	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func exportCSV(items []interface{}) (string, error) {
	if len(items) == 0 {
		return "title,type,date,url,description\n", nil
	}

	allKeys := map[string]bool{}
	for _, raw := range items {
		if item, ok := raw.(map[string]interface{}); ok {
			for k := range item {
				allKeys[k] = true
			}
		}
	}

	// Standard columns first, then any extras alphabetically
	standard := []string{"title", "type", "date", "url", "description"}
	fields := make([]string, 0, len(allKeys))
	for _, col := range standard {
		if allKeys[col] {
			fields = append(fields, col)
			delete(allKeys, col)
		}
	}
	extras := make([]string, 0, len(allKeys))
	for k := range allKeys {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	fields = append(fields, extras...)

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if err := writer.Write(fields); err != nil {
		return "", err
	}
	for _, raw := range items {
		item, _ := raw.(map[string]interface{})
		row := make([]string, len(fields))
		for i, field := range fields {
			if val, ok := item[field]; ok && val != nil {
				row[i] = fmt.Sprintf("%v", val)
			}
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return buf.String(), writer.Error()
}

func exportMarkdown(items []interface{}, username string) string {
	lines := []string{
		fmt.Sprintf("# Contributions for @%s", username),
		"",
		fmt.Sprintf("**Total contributions:** %d", len(items)),
		"",
		"| Title | Type | Date | URL |",
		"|-------|------|------|-----|",
	}

	for _, raw := range items {
		item, _ := raw.(map[string]interface{})
		title := itemString(item, "title")
		if title == "" {
			title = "N/A"
		}
		title = strings.ReplaceAll(title, "|", "\\|")

		contribType := itemString(item, "type")
		if contribType == "" {
			contribType = "N/A"
		}

		date := itemString(item, "date")
		if len(date) >= 10 {
			date = date[:10]
		} else if date == "" {
			date = "N/A"
		}

		url := itemString(item, "url")
		titleCell := title
		if url != "" {
			titleCell = fmt.Sprintf("[%s](%s)", title, url)
		} else {
			url = "#"
		}

		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s |", titleCell, contribType, date, url))
	}

	lines = append(lines, "", "---", fmt.Sprintf("_Generated: %s_", time.Now().UTC().Format(time.RFC3339)))
	return strings.Join(lines, "\n")
}

func (p *Contributions) stats(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	username, err := getString(params, "username", true)
	if err != nil {
		return failure(err.Error())
	}
	groupBy, _ := getString(params, "group_by", false)
	if groupBy != "" && groupBy != "type" && groupBy != "month" && groupBy != "year" {
		return failure("Invalid group_by. Use: type, month, or year")
	}

	items, err := p.fetchPublic(ctx, username)
	if err != nil {
		return failure(err.Error())
	}

	byType := map[string]int{}
	var dates []time.Time
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		contribType := itemString(item, "type")
		if contribType == "" {
			contribType = "UNKNOWN"
		}
		byType[contribType]++

		if d, err := types.ParseDate(itemString(item, "date")); err == nil {
			dates = append(dates, d)
		}
	}

	statsData := map[string]interface{}{
		"total_count": len(items),
		"by_type":     byType,
		"date_range":  nil,
		"grouped":     map[string]interface{}{},
	}

	if len(dates) > 0 {
		earliest, latest := dates[0], dates[0]
		for _, d := range dates[1:] {
			if d.Before(earliest) {
				earliest = d
			}
			if d.After(latest) {
				latest = d
			}
		}
		statsData["date_range"] = map[string]interface{}{
			"earliest": earliest.Format(time.RFC3339),
			"latest":   latest.Format(time.RFC3339),
		}
	}

	switch groupBy {
	case "type":
		statsData["grouped"] = groupByType(items)
	case "month":
		statsData["grouped"] = groupByPeriod(items, "2006-01")
	case "year":
		statsData["grouped"] = groupByPeriod(items, "2006")
	}

	p.logger.Info("stats computed",
		zap.String("username", username),
		zap.Int("total_count", len(items)),
		zap.String("group_by", groupBy),
	)
	return success(statsData)
}

func groupByType(items []interface{}) map[string]interface{} {
	grouped := map[string]interface{}{}
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		contribType := itemString(item, "type")
		if contribType == "" {
			contribType = "UNKNOWN"
		}
		entry, _ := grouped[contribType].([]interface{})
		grouped[contribType] = append(entry, map[string]interface{}{
			"title": item["title"],
			"date":  item["date"],
			"url":   item["url"],
		})
	}
	return grouped
}

// groupByPeriod buckets contributions by a date layout ("2006-01" for
// months, "2006" for years); items with unparseable dates are skipped
func groupByPeriod(items []interface{}, layout string) map[string]interface{} {
	type bucket struct {
		count int
		types map[string]int
	}
	buckets := map[string]*bucket{}

	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		d, err := types.ParseDate(itemString(item, "date"))
		if err != nil {
			continue
		}
		key := d.Format(layout)
		b := buckets[key]
		if b == nil {
			b = &bucket{types: map[string]int{}}
			buckets[key] = b
		}
		b.count++
		contribType := itemString(item, "type")
		if contribType == "" {
			contribType = "UNKNOWN"
		}
		b.types[contribType]++
	}

	grouped := map[string]interface{}{}
	for key, b := range buckets {
		grouped[key] = map[string]interface{}{
			"count": b.count,
			"types": b.types,
		}
	}
	return grouped
}

func (p *Contributions) compare(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	username1, err := getString(params, "username1", true)
	if err != nil {
		return failure(err.Error())
	}
	username2, err := getString(params, "username2", true)
	if err != nil {
		return failure(err.Error())
	}
	if username1 == username2 {
		return failure("Cannot compare user with themselves")
	}
	metric, _ := getString(params, "metric", false)
	if metric != "" && metric != "total" && metric != "by_type" && metric != "by_year" {
		return failure("Invalid metric. Use: total, by_type, or by_year")
	}

	items1, err := p.fetchPublic(ctx, username1)
	if err != nil {
		return failure(err.Error())
	}
	items2, err := p.fetchPublic(ctx, username2)
	if err != nil {
		return failure(err.Error())
	}

	// A user with no public contributions yields counts but no comparison
	if len(items1) == 0 || len(items2) == 0 {
		return success(map[string]interface{}{
			"user1_count": len(items1),
			"user2_count": len(items2),
			"comparison":  nil,
		})
	}

	p.logger.Info("comparison computed",
		zap.String("user1", username1),
		zap.String("user2", username2),
		zap.String("metric", metric),
		zap.Int("user1_count", len(items1)),
		zap.Int("user2_count", len(items2)),
	)
	return success(map[string]interface{}{
		"user1":       username1,
		"user2":       username2,
		"user1_count": len(items1),
		"user2_count": len(items2),
		"comparison":  compareItems(items1, items2, metric),
	})
}

func compareItems(items1, items2 []interface{}, metric string) map[string]interface{} {
	switch metric {
	case "total":
		return map[string]interface{}{
			"metric":     "total",
			"difference": len(items1) - len(items2),
			"ratio":      float64(len(items1)) / float64(len(items2)),
		}
	case "by_type":
		counts1, counts2 := countByType(items1), countByType(items2)
		byType := map[string]interface{}{}
		for _, t := range unionKeys(counts1, counts2) {
			byType[t] = map[string]interface{}{
				"user1":      counts1[t],
				"user2":      counts2[t],
				"difference": counts1[t] - counts2[t],
			}
		}
		return map[string]interface{}{"metric": "by_type", "by_type": byType}
	case "by_year":
		counts1, counts2 := countByYear(items1), countByYear(items2)
		byYear := map[string]interface{}{}
		for _, year := range unionKeys(counts1, counts2) {
			byYear[year] = map[string]interface{}{
				"user1":      counts1[year],
				"user2":      counts2[year],
				"difference": counts1[year] - counts2[year],
			}
		}
		return map[string]interface{}{"metric": "by_year", "by_year": byYear}
	default:
		counts1, counts2 := countByType(items1), countByType(items2)
		byType := map[string]interface{}{}
		for _, t := range unionKeys(counts1, counts2) {
			byType[t] = map[string]interface{}{
				"user1": counts1[t],
				"user2": counts2[t],
			}
		}
		return map[string]interface{}{
			"metric": "detailed",
			"summary": map[string]interface{}{
				"total_difference": len(items1) - len(items2),
				"user1_total":      len(items1),
				"user2_total":      len(items2),
			},
			"by_type": byType,
			"date_range": map[string]interface{}{
				"user1": dateBounds(items1),
				"user2": dateBounds(items2),
			},
		}
	}
}

func countByType(items []interface{}) map[string]int {
	counts := map[string]int{}
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		contribType := itemString(item, "type")
		if contribType == "" {
			contribType = "UNKNOWN"
		}
		counts[contribType]++
	}
	return counts
}

// countByYear counts contributions per year; unparseable dates are skipped
func countByYear(items []interface{}) map[string]int {
	counts := map[string]int{}
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		d, err := types.ParseDate(itemString(item, "date"))
		if err != nil {
			continue
		}
		counts[d.Format("2006")]++
	}
	return counts
}

func unionKeys(a, b map[string]int) []string {
	seen := map[string]bool{}
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dateBounds returns the earliest and latest parseable contribution
// dates, or nils when no date parses
func dateBounds(items []interface{}) map[string]interface{} {
	var dates []time.Time
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if d, err := types.ParseDate(itemString(item, "date")); err == nil {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return map[string]interface{}{"earliest": nil, "latest": nil}
	}

	earliest, latest := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
	}
	return map[string]interface{}{
		"earliest": earliest.Format(time.RFC3339),
		"latest":   latest.Format(time.RFC3339),
	}
}
