package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleStore работает с таблицей Google Sheets через сервисный аккаунт.
// Все запросы проходят через общий лимитер, чтобы не упираться в квоту API.
type GoogleStore struct {
	service       *gsheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
	logger        *zap.Logger

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewGoogleStore(ctx context.Context, credentialsJSON []byte, spreadsheetID string, requestsPerMinute int, logger *zap.Logger) (*GoogleStore, error) {
	srv, err := gsheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать клиент Google Sheets: %w", err)
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &GoogleStore{
		service:       srv,
		spreadsheetID: spreadsheetID,
		limiter:       rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 5),
		logger:        logger.Named("google_sheets"),
	}, nil
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func toCells(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		line := make([]interface{}, len(r))
		for j, v := range r {
			line[j] = v
		}
		out[i] = line
	}
	return out
}

func fromCells(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, r := range values {
		line := make([]string, len(r))
		for j, v := range r {
			line[j] = fmt.Sprint(v)
		}
		out[i] = line
	}
	return out
}

func (s *GoogleStore) wait(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}

// sheetID ищет числовой id листа. При промахе кеш перечитывается один раз.
func (s *GoogleStore) sheetID(ctx context.Context, name string) (int64, bool, error) {
	s.mu.Lock()
	id, ok := s.sheetIDs[name]
	s.mu.Unlock()
	if ok {
		return id, true, nil
	}

	if err := s.wait(ctx); err != nil {
		return 0, false, err
	}
	resp, err := s.service.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, false, err
	}

	ids := make(map[string]int64, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			ids[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	s.mu.Lock()
	s.sheetIDs = ids
	s.mu.Unlock()

	id, ok = ids[name]
	return id, ok, nil
}

func (s *GoogleStore) addSheet(ctx context.Context, name string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{Properties: &gsheets.SheetProperties{Title: name}},
		}},
	}
	resp, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("не удалось создать лист %s: %w", name, err)
	}

	s.mu.Lock()
	if s.sheetIDs == nil {
		s.sheetIDs = make(map[string]int64)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		s.sheetIDs[name] = resp.Replies[0].AddSheet.Properties.SheetId
	}
	s.mu.Unlock()

	s.logger.Info("Создан лист", zap.String("sheet", name))
	return nil
}

func (s *GoogleStore) update(ctx context.Context, rng string, rows [][]string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, rng, &gsheets.ValueRange{Values: toCells(rows)}).
		ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (s *GoogleStore) ReadTable(ctx context.Context, name string) (*Table, error) {
	_, ok, err := s.sheetID(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(name)).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return NewTable(name, fromCells(resp.Values)), nil
}

// padRows дополняет таблицу пустыми ячейками до height строк и width столбцов.
// Так одна запись Values.Update затирает все старые данные без отдельного Clear.
func padRows(rows [][]string, height, width int) [][]string {
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	if height < len(rows) {
		height = len(rows)
	}

	out := make([][]string, height)
	for i := range out {
		line := make([]string, width)
		if i < len(rows) {
			copy(line, rows[i])
		}
		out[i] = line
	}
	return out
}

// extent возвращает число заполненных строк и максимальную ширину листа.
func (s *GoogleStore) extent(ctx context.Context, name string) (int, int, error) {
	if err := s.wait(ctx); err != nil {
		return 0, 0, err
	}
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(name)).Context(ctx).Do()
	if err != nil {
		return 0, 0, err
	}
	width := 0
	for _, r := range resp.Values {
		if len(r) > width {
			width = len(r)
		}
	}
	return len(resp.Values), width, nil
}

// WriteTable перезаписывает заголовок и данные одним запросом. Если новая таблица
// короче старой, хвост затирается пустыми строками в том же запросе.
func (s *GoogleStore) WriteTable(ctx context.Context, name string, header []string, rows [][]string) error {
	_, ok, err := s.sheetID(ctx, name)
	if err != nil {
		return err
	}

	oldHeight, oldWidth := 0, 0
	if !ok {
		if err := s.addSheet(ctx, name); err != nil {
			return err
		}
	} else {
		oldHeight, oldWidth, err = s.extent(ctx, name)
		if err != nil {
			return err
		}
	}

	all := padRows(append([][]string{header}, rows...), oldHeight, oldWidth)
	return s.update(ctx, quoteSheet(name)+"!A1", all)
}

func (s *GoogleStore) AppendRow(ctx context.Context, name string, row []string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, quoteSheet(name), &gsheets.ValueRange{Values: toCells([][]string{row})}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}

func (s *GoogleStore) UpdateCell(ctx context.Context, name string, dataRow, column int, value string) error {
	cell, err := excelize.CoordinatesToCellName(column+1, dataRow+2)
	if err != nil {
		return err
	}
	return s.update(ctx, quoteSheet(name)+"!"+cell, [][]string{{value}})
}

func (s *GoogleStore) DeleteRow(ctx context.Context, name string, dataRow int) error {
	id, ok, err := s.sheetID(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	if err := s.wait(ctx); err != nil {
		return err
	}
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:         id,
					Dimension:       "ROWS",
					StartIndex:      int64(dataRow + 1),
					EndIndex:        int64(dataRow + 2),
					ForceSendFields: []string{"SheetId"},
				},
			},
		}},
	}
	_, err = s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (s *GoogleStore) EnsureTable(ctx context.Context, name string, header []string) error {
	_, ok, err := s.sheetID(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		if err := s.addSheet(ctx, name); err != nil {
			return err
		}
	} else {
		if err := s.wait(ctx); err != nil {
			return err
		}
		resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(name)+"!1:1").Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
			return nil
		}
	}
	return s.update(ctx, quoteSheet(name)+"!A1", [][]string{header})
}
