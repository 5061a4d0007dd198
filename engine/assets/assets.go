package assets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets/loaders"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

type AssetInfo struct {
	/** @brief The slash separated name relative to the asset root. */
	Name       string
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the asset directory and dispatches loads to the
// loader registered for each resource type. With watching enabled the
// index follows files created or removed while running.
type AssetManager struct {
	root    string
	watch   bool
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(root string, watch bool) (*AssetManager, error) {
	am := &AssetManager{
		root:    filepath.Clean(root),
		watch:   watch,
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	if watch {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, err
		}
		am.fsnotify = fsWatch
	}
	return am, nil
}

func (am *AssetManager) Initialize() error {
	info, err := os.Stat(am.root)
	if err != nil || !info.IsDir() {
		err := fmt.Errorf("%w: asset directory `%s`", core.ErrAssetNotFound, am.root)
		core.LogError(err.Error())
		return err
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.registerLoader(metadata.ResourceTypeFont, &loaders.SystemFontLoader{})
	am.registerLoader(metadata.ResourceTypeSound, &loaders.BinaryLoader{})
	am.registerLoader(metadata.ResourceTypeModel, &loaders.BinaryLoader{})

	if err := am.watchRecursive(am.root, false); err != nil {
		return err
	}
	if am.watch {
		go am.start()
	} else {
		close(am.stopped)
	}

	core.LogInfo("asset index ready: %s (%d files)", am.root, am.Count())
	return nil
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	<-am.stopped
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Has reports whether the named asset is indexed.
func (am *AssetManager) Has(name string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	_, ok := am.assets[name]
	return ok
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Names lists the indexed assets of a type in lexical order.
func (am *AssetManager) Names(resourceType metadata.ResourceType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	names := []string{}
	for name, info := range am.assets {
		if info.Type == resourceType {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Load an asset using the appropriate loader. name is relative to the asset
// root, e.g. "images/blank.png".
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	am.mutex.Lock()
	asset, exists := am.assets[name]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[name] = asset
	}
	am.mutex.Unlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	if asset.Type != resourceType {
		return nil, fmt.Errorf("asset `%s` is a %s, not a %s", name, asset.Type, resourceType)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	res, err := loader.Load(asset.Path, resourceType, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset `%s`: %w", name, err)
	}
	if res.Name == "" {
		res.Name = name
	}
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	loader, ok := am.loaders[asset.Type]
	if !ok {
		return nil
	}
	return loader.Unload(asset)
}

// ShaderNames returns the asset names of the vertex and fragment stages of pair.
func ShaderNames(pair metadata.ShaderPair) (string, string) {
	return path.Join("shaders", "vertex", pair.Vertex+".vert"), path.Join("shaders", "fragment", pair.Fragment+".frag")
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch new directory `%s`: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
				core.LogDebug("asset changed: %s", e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive indexes every file under path and, when watching, adds
// all of its directories to the watch list.
func (am *AssetManager) watchRecursive(root string, unWatch bool) error {
	return filepath.Walk(root, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if am.fsnotify == nil {
				return nil
			}
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(fullPath string) {
	assetType := determineAssetType(fullPath)
	if assetType == metadata.ResourceTypeNone {
		return
	}
	name, err := am.relativeName(fullPath)
	if err != nil {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = AssetInfo{
		Name: name,
		Path: fullPath,
		Type: assetType,
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(fullPath string) {
	name, err := am.relativeName(fullPath)
	if err != nil {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, name)
}

func (am *AssetManager) relativeName(fullPath string) (string, error) {
	rel, err := filepath.Rel(am.root, fullPath)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", errors.New("path outside of the asset root")
	}
	return filepath.ToSlash(rel), nil
}

func determineAssetType(p string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".vert", ".frag":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg":
		return metadata.ResourceTypeImage
	case ".fnt":
		return metadata.ResourceTypeBitmapFont
	case ".ttf", ".otf":
		return metadata.ResourceTypeFont
	case ".ogg", ".wav", ".mp3":
		return metadata.ResourceTypeSound
	case ".bam", ".egg", ".gltf", ".glb", ".obj":
		return metadata.ResourceTypeModel
	default:
		return metadata.ResourceTypeNone
	}
}
