package services

import (
	"context"
	"encoding/csv"
	"io"
	"reflect"
	"strconv"
	"strings"

	"ngi/constants"
	"ngi/errors"
	"ngi/models"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// ExportCollections are the tables an admin can download
var ExportCollections = []string{"bookings", "leads", "reviews", "contacts", "gallery"}

// ExportService writes a collection as CSV with the JSON field names as header
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// AnalyticsSummary is the dashboard counter strip
type AnalyticsSummary struct {
	Bookings        int64 `json:"bookings"`
	Leads           int64 `json:"leads"`
	ApprovedReviews int64 `json:"approvedReviews"`
}

// Summary counts bookings, leads and approved reviews
func (s *ExportService) Summary(ctx context.Context) (AnalyticsSummary, error) {
	var out AnalyticsSummary
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Booking{}).Count(&out.Bookings).Error; err != nil {
		return out, errors.NewAppError(errors.ErrCodeDBError, "Failed to count bookings", err)
	}
	if err := db.Model(&models.Lead{}).Count(&out.Leads).Error; err != nil {
		return out, errors.NewAppError(errors.ErrCodeDBError, "Failed to count leads", err)
	}
	if err := db.Model(&models.Review{}).Where("status = ?", constants.ReviewStatusApproved).Count(&out.ApprovedReviews).Error; err != nil {
		return out, errors.NewAppError(errors.ErrCodeDBError, "Failed to count reviews", err)
	}
	return out, nil
}

// WriteCSV streams collection to w, oldest first
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer, collection string) error {
	var rows interface{}
	switch collection {
	case "bookings":
		rows = &[]models.Booking{}
	case "leads":
		rows = &[]models.Lead{}
	case "reviews":
		rows = &[]models.Review{}
	case "contacts":
		rows = &[]models.ContactMessage{}
	case "gallery":
		rows = &[]models.GalleryItem{}
	default:
		return errors.NewAppError(errors.ErrCodeValidation, "Unknown collection "+collection, errors.ErrInvalidInput)
	}

	if err := s.db.WithContext(ctx).Order("id").Find(rows).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to read "+collection, err)
	}

	slice := reflect.ValueOf(rows).Elem()
	header := jsonFieldNames(slice.Type().Elem())

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < slice.Len(); i++ {
		record, err := csvRecord(slice.Index(i).Interface(), header)
		if err != nil {
			return err
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonFieldNames lists the json names of t's exported fields in order
func jsonFieldNames(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}

func csvRecord(row interface{}, header []string) ([]string, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	record := make([]string, len(header))
	for i, h := range header {
		record[i] = csvCell(fields[h])
	}
	return record, nil
}

func csvCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
