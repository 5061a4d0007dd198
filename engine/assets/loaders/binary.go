package loaders

import (
	"os"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

// BinaryLoader reads a file as is. Sounds and models are handed to their
// collaborators through FullPath, Data keeps the raw bytes.
type BinaryLoader struct {
	Type metadata.ResourceType
}

func (bl *BinaryLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     resourceName(params),
		FullPath: path,
		Type:     assetType,
		DataSize: uint64(len(buf)),
		Data:     buf,
	}, nil
}

func (bl *BinaryLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// resourceName reads the optional "name" entry of map params.
func resourceName(params interface{}) string {
	if p, ok := params.(map[string]string); ok {
		return p["name"]
	}
	return ""
}
