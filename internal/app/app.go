// Package app wires configuration into the stores and processor shared by
// the mazerunner binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/mazerunner/config"
	"github.com/katalvlaran/mazerunner/pipeline"
	"github.com/katalvlaran/mazerunner/storage"
)

// Stores bundles the object and record stores selected by configuration.
type Stores struct {
	Objects storage.ObjectStore
	Records storage.RecordStore

	closers []io.Closer
}

// Close releases connections held by the stores.
func (s *Stores) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewStores builds the backend named by cfg.Storage.Backend. The aws
// backend loads credentials from the default chain; the mysql backend keeps
// objects on the filesystem and records in MySQL.
func NewStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		m := storage.NewMemory()
		return &Stores{Objects: m, Records: m}, nil
	case config.BackendFS:
		fs := storage.NewFS(cfg.Storage.Dir)
		return &Stores{Objects: fs, Records: fs}, nil
	case config.BackendMySQL:
		records, err := storage.OpenMySQL(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Objects: storage.NewFS(cfg.Storage.Dir),
			Records: records,
			closers: []io.Closer{records},
		}, nil
	case config.BackendAWS:
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Storage.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Storage.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("app: load aws config: %w", err)
		}
		return &Stores{
			Objects: storage.NewS3(s3.NewFromConfig(awsCfg)),
			Records: storage.NewDynamoDB(dynamodb.NewFromConfig(awsCfg), cfg.Storage.Table),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalid, cfg.Storage.Backend)
	}
}

// NewProcessor builds a pipeline.Processor from cfg over st. reg may be nil.
func NewProcessor(cfg *config.Config, st *Stores, reg prometheus.Registerer) (*pipeline.Processor, error) {
	return pipeline.NewProcessor(st.Objects, st.Records,
		pipeline.WithKeyPrefix(cfg.KeyPrefix),
		pipeline.WithTargetBucket(cfg.TargetBucket),
		pipeline.WithStepLimit(cfg.StepLimit),
		pipeline.WithRegisterer(reg),
	)
}
