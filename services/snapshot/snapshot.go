package snapshot

import (
	"archive/tar"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"fiofaker/pkg/fixtures"
	"fiofaker/pkg/render"
)

const (
	manifestFileName   = "manifest.yaml"
	fixturesTarPrefix  = "fixtures"
	definitionsPrefix  = "definitions"
	projectDefinition  = "project"
	runDefinition      = "run-definition"
	maxArchiveFileSize = 64 << 20
)

// Config configures snapshot creation.
type Config struct {
	Output    string
	Generator *fixtures.Generator
	// Renderer adds the project and run definitions when set.
	Renderer *render.Engine
	Params   Params
	// Entities defaults to every catalog entity.
	Entities []string
	// Seed is recorded in the manifest when set.
	Seed   *uint64
	Now    func() time.Time
	Stdout io.Writer
}

type document struct {
	file ManifestFile
	body []byte
}

// Write generates the configured entities and writes them with a manifest to
// the tar.zst archive at Output.
func Write(ctx context.Context, cfg Config) (*Manifest, error) {
	if cfg.Output == "" {
		return nil, errors.New("output path is required")
	}
	if cfg.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if len(cfg.Entities) == 0 {
		cfg.Entities = Entities()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	params := cfg.Params.withDefaults()

	docs := make([]document, 0, len(cfg.Entities)+2)
	for _, entity := range cfg.Entities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := Generate(cfg.Generator, entity, params)
		if err != nil {
			return nil, err
		}
		body, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", entity, err)
		}
		docs = append(docs, newDocument(fixturesTarPrefix+"/"+entity+".json", entity, "json", body))
	}

	if cfg.Renderer != nil {
		if err := checkEntryName(params.Run); err != nil {
			return nil, fmt.Errorf("run name: %w", err)
		}
		build := strconv.Itoa(params.Build)
		project, err := cfg.Renderer.Project(params.Project, build)
		if err != nil {
			return nil, fmt.Errorf("render project definition: %w", err)
		}
		run, err := cfg.Renderer.Run(params.Project, build, params.Run)
		if err != nil {
			return nil, fmt.Errorf("render run definition: %w", err)
		}
		docs = append(docs,
			newDocument(definitionsPrefix+"/project.yml", projectDefinition, "yaml", []byte(project)),
			newDocument(definitionsPrefix+"/"+params.Run+".yml", runDefinition, "yaml", []byte(run)),
		)
	}

	createdAt := cfg.Now().UTC().Truncate(time.Second)
	manifest := &Manifest{
		Version:   manifestVersion,
		CreatedAt: createdAt,
		Project:   params.Project,
		Seed:      cfg.Seed,
		Files:     make([]ManifestFile, len(docs)),
	}
	for i, doc := range docs {
		manifest.Files[i] = doc.file
	}

	manifestBytes, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	if err := writeArchive(cfg.Output, createdAt, manifestBytes, docs); err != nil {
		return nil, err
	}

	fmt.Fprintf(cfg.Stdout, "wrote snapshot %s (%d files)\n", cfg.Output, len(docs))
	return manifest, nil
}

// checkEntryName rejects names that would not survive as a single archive
// path element.
func checkEntryName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q is not a plain file name", name)
	}
	return nil
}

func newDocument(path, entity, kind string, body []byte) document {
	sum := sha256.Sum256(body)
	return document{
		file: ManifestFile{
			Path:   path,
			Entity: entity,
			Kind:   kind,
			Size:   int64(len(body)),
			SHA256: hex.EncodeToString(sum[:]),
		},
		body: body,
	}
}

func writeArchive(output string, modTime time.Time, manifest []byte, docs []document) (err error) {
	dir := filepath.Dir(output)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	encoder, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	tw := tar.NewWriter(encoder)

	if err := writeEntry(tw, manifestFileName, modTime, manifest); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := writeEntry(tw, doc.file.Path, modTime, doc.body); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close zstd: %w", err)
	}
	return nil
}

func writeEntry(tw *tar.Writer, name string, modTime time.Time, body []byte) error {
	header := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(body)),
		ModTime:  modTime,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("write header for %q: %w", name, err)
	}
	if _, err := tw.Write(body); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}

// Archive is a verified snapshot.
type Archive struct {
	Manifest Manifest
	Files    map[string][]byte
}

// Open reads the archive at path and checks every file against the manifest.
func Open(ctx context.Context, path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer decoder.Close()

	var (
		manifestBytes []byte
		files         = map[string][]byte{}
	)

	tr := tar.NewReader(decoder)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.ToSlash(filepath.Clean(header.Name))
		if strings.HasPrefix(name, "../") || filepath.IsAbs(name) {
			return nil, fmt.Errorf("invalid entry path %q", header.Name)
		}
		if header.Size > maxArchiveFileSize {
			return nil, fmt.Errorf("entry %q too large", name)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", name, err)
		}
		if name == manifestFileName {
			manifestBytes = data
			continue
		}
		files[name] = data
	}

	if len(manifestBytes) == 0 {
		return nil, errors.New("snapshot missing manifest.yaml")
	}

	var manifest Manifest
	if err := yaml.Unmarshal(manifestBytes, &manifest); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if manifest.Version != manifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %q", manifest.Version)
	}

	for _, entry := range manifest.Files {
		data, ok := files[entry.Path]
		if !ok {
			return nil, fmt.Errorf("file %q missing from archive", entry.Path)
		}
		if err := validateFile(entry, data); err != nil {
			return nil, err
		}
	}

	return &Archive{Manifest: manifest, Files: files}, nil
}

func validateFile(entry ManifestFile, data []byte) error {
	if int64(len(data)) != entry.Size {
		return fmt.Errorf("size mismatch for %q: expected %d got %d", entry.Path, entry.Size, len(data))
	}
	sum := sha256.Sum256(data)
	if !strings.EqualFold(hex.EncodeToString(sum[:]), entry.SHA256) {
		return fmt.Errorf("sha256 mismatch for %q", entry.Path)
	}
	return nil
}
