package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"jobko-engine/internal/domain"
)

// DriveStore keeps the record set as a single CSV file inside a well-known
// Google Drive folder, with create-or-update semantics keyed by file name.
type DriveStore struct {
	svc      *drive.Service
	folderID string
	fileName string

	driveID string // set when the folder lives on a shared drive
	fileID  string // resolved by Load, reused by Save
}

func NewDriveStore(ctx context.Context, ts oauth2.TokenSource, folderID, fileName string) (*DriveStore, error) {
	if folderID == "" {
		return nil, errors.New("drive folder id is empty")
	}
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &DriveStore{svc: svc, folderID: folderID, fileName: fileName}, nil
}

// assertFolder verifies the configured folder exists and actually is a
// folder before anything gets uploaded next to it.
func (s *DriveStore) assertFolder(ctx context.Context) error {
	meta, err := s.svc.Files.Get(s.folderID).
		Fields("id", "name", "mimeType", "driveId").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 404 {
			return fmt.Errorf("drive folder %s not found (check id and sharing)", s.folderID)
		}
		return fmt.Errorf("drive folder lookup: %w", err)
	}
	if meta.MimeType != "application/vnd.google-apps.folder" {
		return fmt.Errorf("drive id %s is %s, not a folder", s.folderID, meta.MimeType)
	}
	s.driveID = meta.DriveId
	log.Printf("[drive] target folder %q (driveId=%s)", meta.Name, meta.DriveId)
	return nil
}

func (s *DriveStore) findFile(ctx context.Context) (string, error) {
	q := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", s.fileName, s.folderID)
	call := s.svc.Files.List().
		Q(q).
		Spaces("drive").
		Fields("files(id,name)").
		IncludeItemsFromAllDrives(true).
		SupportsAllDrives(true)
	if s.driveID != "" {
		call = call.Corpora("drive").DriveId(s.driveID)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("drive list %q: %w", s.fileName, err)
	}
	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

func (s *DriveStore) Load(ctx context.Context) ([]domain.Posting, error) {
	if err := s.assertFolder(ctx); err != nil {
		return nil, err
	}

	id, err := s.findFile(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		log.Printf("[drive] no existing %q in folder, will create", s.fileName)
		return nil, nil
	}
	s.fileID = id

	resp, err := s.svc.Files.Get(id).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive download %s: %w", id, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("drive read %s: %w", id, err)
	}

	postings, err := DecodeCSV(b)
	if err != nil {
		return nil, err
	}
	log.Printf("[drive] loaded %d existing records from %q", len(postings), s.fileName)
	return postings, nil
}

func (s *DriveStore) Save(ctx context.Context, postings []domain.Posting) error {
	b, err := EncodeCSV(postings)
	if err != nil {
		return err
	}
	media := bytes.NewReader(b)

	if s.fileID != "" {
		_, err = s.svc.Files.Update(s.fileID, &drive.File{}).
			Media(media, googleapi.ContentType("text/csv")).
			SupportsAllDrives(true).
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("drive update %s: %w", s.fileID, err)
		}
		log.Printf("[drive] updated %q (id=%s)", s.fileName, s.fileID)
		return nil
	}

	created, err := s.svc.Files.Create(&drive.File{
		Name:    s.fileName,
		Parents: []string{s.folderID},
	}).
		Media(media, googleapi.ContentType("text/csv")).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("drive create %q: %w", s.fileName, err)
	}
	s.fileID = created.Id
	log.Printf("[drive] created %q (id=%s)", s.fileName, created.Id)
	return nil
}
