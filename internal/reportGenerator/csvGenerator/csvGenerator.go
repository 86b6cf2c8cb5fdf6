package csvGenerator

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"

	"github.com/KotFed0t/stock_dashboard/internal/model"
	"github.com/KotFed0t/stock_dashboard/utils"
)

type CSVGenerator struct{}

func New() *CSVGenerator {
	return &CSVGenerator{}
}

func (g *CSVGenerator) Generate(ctx context.Context, table model.ReportTable) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "CSVGenerator.Generate"

	if len(table.Columns) == 0 {
		return nil, "", errors.New("empty report table")
	}

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	buf := bytes.Buffer{}
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		slog.Error("got error while writing header", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := w.WriteAll(table.Rows); err != nil {
		slog.Error("got error while writing rows", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".csv", nil
}
