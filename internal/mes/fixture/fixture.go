// Package fixture loads the seed dataset the in-memory overlay starts from.
package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

//go:embed data/*.json
var embedded embed.FS

// Source opens a named fixture file (e.g. "users.json")
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSSource reads fixtures from a file system
type FSSource struct {
	FS fs.FS
}

func (s FSSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return s.FS.Open(name)
}

// Embedded fixtures compiled into the binary
func Embedded() Source {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return FSSource{FS: sub}
}

// Dir fixtures read from a directory on disk
func Dir(dir string) Source {
	return FSSource{FS: os.DirFS(dir)}
}

// MinIOSource reads fixtures from objects <prefix>/<name> in a bucket
type MinIOSource struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewMinIOSource(client *minio.Client, bucket, prefix string) *MinIOSource {
	return &MinIOSource{client: client, bucket: bucket, prefix: prefix}
}

func (s *MinIOSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucket, path.Join(s.prefix, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}
	return object, nil
}

// NewSource picks the fixture source named in cfg
func NewSource(cfg *config.Config) (Source, error) {
	switch cfg.Fixtures.Source {
	case config.FixtureSourceEmbed, "":
		return Embedded(), nil
	case config.FixtureSourceDir:
		return Dir(cfg.Fixtures.Dir), nil
	case config.FixtureSourceMinIO:
		client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio client: %w", err)
		}
		return NewMinIOSource(client, cfg.MinIO.Bucket, cfg.Fixtures.Prefix), nil
	}
	return nil, fmt.Errorf("unknown fixture source %q", cfg.Fixtures.Source)
}

// UserRecord a fixture user with its plaintext demo password
type UserRecord struct {
	entity.User
	PlainPassword string `json:"password"`
}

// Dataset everything the overlay is seeded with
type Dataset struct {
	Users             []UserRecord
	Plants            []entity.Plant
	KPIs              entity.KPIData
	ProductionData    []entity.ProductionData
	Items             []entity.InventoryItem
	Products          []entity.Product
	BOMs              map[string]entity.ProductBOM
	WorkOrders        []entity.WorkOrder
	NCRs              []entity.NonConformanceReport
	InspectionForms   []entity.InspectionForm
	InspectionResults []entity.InspectionResult
	Machines          []entity.Machine
	Integrations      []entity.Integration
	Telemetry         []entity.TelemetryData
}

// Load reads and decodes every fixture file from src
func Load(ctx context.Context, src Source) (*Dataset, error) {
	var (
		ds        Dataset
		users     struct {
			Users  []UserRecord   `json:"users"`
			Plants []entity.Plant `json:"plants"`
		}
		dashboard struct {
			KPIs           entity.KPIData          `json:"kpis"`
			ProductionData []entity.ProductionData `json:"productionData"`
		}
		inventory struct {
			Items []entity.InventoryItem `json:"items"`
		}
		products struct {
			Products []entity.Product            `json:"products"`
			BOMs     map[string]entity.ProductBOM `json:"boms"`
		}
		workOrders struct {
			WorkOrders []entity.WorkOrder `json:"workOrders"`
		}
		quality struct {
			NCRs              []entity.NonConformanceReport `json:"ncrs"`
			InspectionForms   []entity.InspectionForm       `json:"inspectionForms"`
			InspectionResults []entity.InspectionResult     `json:"inspectionResults"`
		}
		machines struct {
			Machines     []entity.Machine       `json:"machines"`
			Integrations []entity.Integration   `json:"integrations"`
			Telemetry    []entity.TelemetryData `json:"telemetryHistory"`
		}
	)

	files := []struct {
		name string
		dst  any
	}{
		{"users.json", &users},
		{"dashboard.json", &dashboard},
		{"inventory.json", &inventory},
		{"products.json", &products},
		{"workorders.json", &workOrders},
		{"quality.json", &quality},
		{"machines.json", &machines},
	}
	for _, f := range files {
		if err := decode(ctx, src, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	ds.Users = users.Users
	ds.Plants = users.Plants
	ds.KPIs = dashboard.KPIs
	ds.ProductionData = dashboard.ProductionData
	ds.Items = inventory.Items
	ds.Products = products.Products
	ds.BOMs = products.BOMs
	ds.WorkOrders = workOrders.WorkOrders
	ds.NCRs = quality.NCRs
	ds.InspectionForms = quality.InspectionForms
	ds.InspectionResults = quality.InspectionResults
	ds.Machines = machines.Machines
	ds.Integrations = machines.Integrations
	ds.Telemetry = machines.Telemetry
	if ds.BOMs == nil {
		ds.BOMs = map[string]entity.ProductBOM{}
	}
	return &ds, nil
}

func decode(ctx context.Context, src Source, name string, dst any) error {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open fixture %s: %w", name, err)
	}
	defer rc.Close()
	if err := json.NewDecoder(rc).Decode(dst); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}
