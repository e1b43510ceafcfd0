package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
	"immoflow-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IDocumentProcessorService interface {
	Consume(ctx context.Context) error
}

// documentProcessorService hashes uploaded documents off the request path
// and stores the digest in the owning record's metadata. Reviewers compare
// it against what the requester claims to have sent.
type documentProcessorService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uploadDir  string
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentProcessorService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uploadDir string,
	uowFactory unitofwork.RepositoryFactory,
) IDocumentProcessorService {
	return &documentProcessorService{
		pubSub:     pubSub,
		topicName:  topicName,
		uploadDir:  uploadDir,
		uowFactory: uowFactory,
	}
}

func (ds *documentProcessorService) Consume(ctx context.Context) error {
	messages, err := ds.pubSub.Subscribe(ctx, ds.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ds.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ds *documentProcessorService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProcessDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal document message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing document %s for %s %s", payload.URL, payload.EntityType, payload.EntityId)

	checksum, size, err := ds.digest(payload.URL)
	if err != nil {
		if os.IsNotExist(err) {
			// Compensated away by a failed submission; nothing to hash.
			log.Printf("[WARN] Document vanished before processing: %s", payload.URL)
			msg.Ack()
			return
		}
		log.Printf("[ERROR] Failed to hash document %s: %v", payload.URL, err)
		msg.Nack()
		return
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)

	switch payload.EntityType {
	case "role_change_request":
		err = ds.attachToRequest(ctx, uow, payload, checksum, size)
	case "certification":
		err = ds.attachToCertification(ctx, uow, payload, checksum, size)
	default:
		log.Printf("[WARN] Unknown entity type in document message: %s", payload.EntityType)
		msg.Ack()
		return
	}

	if err != nil {
		log.Printf("[ERROR] Failed to attach metadata for %s: %v", payload.EntityId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document processed: %s (%d bytes)", payload.URL, size)
	msg.Ack()
}

func (ds *documentProcessorService) attachToRequest(ctx context.Context, uow unitofwork.UnitOfWork, payload dto.ProcessDocumentMessage, checksum string, size int64) error {
	request, err := uow.RoleChangeRepository().FindOne(ctx, specification.ByID{ID: payload.EntityId})
	if err != nil {
		return err
	}
	if request == nil {
		// Request cancelled before processing finished
		return nil
	}

	if request.RequestData == nil {
		request.RequestData = make(map[string]interface{})
	}
	checksums, _ := request.RequestData["document_checksums"].(map[string]interface{})
	if checksums == nil {
		checksums = make(map[string]interface{})
	}
	checksums[payload.DocumentType] = map[string]interface{}{
		"sha256": checksum,
		"bytes":  size,
	}
	request.RequestData["document_checksums"] = checksums

	// Update writes status fields only; push metadata through a dedicated
	// JSON column update instead.
	return uow.RoleChangeRepository().UpdateRequestData(ctx, request.ID, request.RequestData)
}

func (ds *documentProcessorService) attachToCertification(ctx context.Context, uow unitofwork.UnitOfWork, payload dto.ProcessDocumentMessage, checksum string, size int64) error {
	cert, err := uow.CertificationRepository().FindOne(ctx, specification.ByID{ID: payload.EntityId})
	if err != nil {
		return err
	}
	if cert == nil {
		return nil
	}

	if cert.Metadata == nil {
		cert.Metadata = make(map[string]interface{})
	}
	checksums, _ := cert.Metadata["document_checksums"].(map[string]interface{})
	if checksums == nil {
		checksums = make(map[string]interface{})
	}
	checksums[payload.URL] = map[string]interface{}{
		"sha256": checksum,
		"bytes":  size,
	}
	cert.Metadata["document_checksums"] = checksums

	return uow.CertificationRepository().UpdateMetadata(ctx, cert.ID, cert.Metadata)
}

// digest resolves the stored file behind a public URL and hashes it.
func (ds *documentProcessorService) digest(url string) (string, int64, error) {
	idx := strings.LastIndex(url, "/")
	if idx < 0 {
		return "", 0, os.ErrNotExist
	}
	path := filepath.Join(ds.uploadDir, storage.DocumentsDir, filepath.Base(url[idx+1:]))

	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}

	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]), int64(len(content)), nil
}
