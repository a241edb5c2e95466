package service

import (
	"fmt"

	"github.com/MKhiriev/go-conf-keeper/internal/utils"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// secretBytes is the entropy of generated signing secrets.
const secretBytes = 32

// DefaultDocument builds the defaults passed to ConfigService.Init: the
// built-in option tree with a fresh instance id and fresh secrets, with
// overlay deep-merged on top. overlay may be nil.
//
// Generated values only matter on first start; once a record is persisted
// its values win over these.
func DefaultDocument(overlay map[string]any) (models.Document, error) {
	requestSignature, err := utils.RandomSecret(secretBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating request signature: %w", err)
	}
	jwtSecret, err := utils.RandomSecret(secretBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating jwt secret: %w", err)
	}

	instanceID := utils.NewUUIDGenerator().Generate()

	defaults, err := models.NewDocument(models.DefaultOptions(instanceID, requestSignature, jwtSecret))
	if err != nil {
		return nil, err
	}

	merged, err := utils.DeepMerge(defaults, overlay)
	if err != nil {
		return nil, fmt.Errorf("error applying defaults overlay: %w", err)
	}

	return merged, nil
}
