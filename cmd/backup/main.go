// Command backup sichert die Client-Zustandsdatenbank (Verlauf, Einstellungen) nach S3.
package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"shin-college/storage"
)

type BackupConfig struct {
	DBHost          string `envconfig:"DB_HOST" required:"true"`
	DBPort          int    `envconfig:"DB_PORT" default:"5432"`
	DBUser          string `envconfig:"DB_USER" required:"true"`
	DBPassword      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName          string `envconfig:"DB_NAME" required:"true"`
	BackupBucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string `envconfig:"BACKUP_S3_REGION" default:"eu-central-1"`
	BackupPrefix    string `envconfig:"BACKUP_PREFIX" default:"college-state-"`
	KeepBackups     int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

// bucketAPI ist der Teil des S3-Clients, den Upload und Rotation brauchen.
type bucketAPI interface {
	storage.ObjectPutter
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	logging.Info("Starte Backup-Prozess...")
	_ = godotenv.Load()

	var cfg BackupConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}
	ctx := context.Background()

	// 1. Datenbank-Dump erstellen
	dumpData, err := createDump(ctx, cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des DB-Dumps", zap.Error(err))
	}

	// 2. S3-Client erstellen
	client, err := storage.NewS3Client(ctx, storage.S3Options{
		URL:    cfg.BackupEndpoint,
		Region: cfg.BackupRegion,
		Key:    cfg.BackupAccessKey,
		Secret: cfg.BackupSecretKey,
	})
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}

	// 3. Backup nach S3 hochladen
	key := backupKey(cfg.BackupPrefix, time.Now())
	link, err := storage.UploadFile(ctx, client, cfg.BackupEndpoint, cfg.BackupBucket, key, dumpData)
	if err != nil {
		logging.Fatal("Fehler beim Hochladen nach S3", zap.Error(err))
	}
	logging.Info("Backup hochgeladen", zap.String("link", link), zap.Int("bytes", len(dumpData)))

	// 4. Alte Backups rotieren
	deleted, err := rotateBackups(ctx, client, cfg, logging)
	if err != nil {
		logging.Fatal("Fehler bei der Rotation alter Backups", zap.Error(err))
	}
	logging.Info("Backup-Prozess erfolgreich abgeschlossen.", zap.Int("deleted", deleted))
}

func backupKey(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s.sql.gz", prefix, now.UTC().Format("2006-01-02T15-04-05Z"))
}

func createDump(ctx context.Context, cfg BackupConfig) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", cfg.DBHost,
		"-p", fmt.Sprint(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-t", "history_entries",
		"-t", "preferences",
		"-w", // Passwort wird über PGPASSWORD bereitgestellt
	)
	cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	data, err := gzipStream(stdout)
	if err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("pg_dump: %w", err)
	}
	return data, nil
}

func gzipStream(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := io.Copy(gzipWriter, r); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rotateBackups behält die neuesten KeepBackups Objekte mit dem Backup-Präfix.
func rotateBackups(ctx context.Context, client bucketAPI, cfg BackupConfig, logging *zap.Logger) (int, error) {
	output, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.BackupBucket),
		Prefix: aws.String(cfg.BackupPrefix),
	})
	if err != nil {
		return 0, err
	}

	objects := output.Contents[:0:0]
	for _, obj := range output.Contents {
		if obj.Key != nil && obj.LastModified != nil && strings.HasPrefix(*obj.Key, cfg.BackupPrefix) {
			objects = append(objects, obj)
		}
	}
	if len(objects) <= cfg.KeepBackups {
		logging.Info("Keine Rotation nötig", zap.Int("backups", len(objects)), zap.Int("keep", cfg.KeepBackups))
		return 0, nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(*objects[j].LastModified)
	})

	deleted := 0
	for _, obj := range objects[cfg.KeepBackups:] {
		logging.Info("Lösche altes Backup", zap.String("key", *obj.Key))
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.BackupBucket),
			Key:    obj.Key,
		})
		if err != nil {
			logging.Warn("Fehler beim Löschen", zap.String("key", *obj.Key), zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}
