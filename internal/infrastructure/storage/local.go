// Package storage guarda ficheros en disco bajo el directorio público servido
// como estático: avatars/ para imágenes de perfil, uploads/ para subidas del
// usuario y docs/ para los PDFs generados por el servicio.
package storage

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	appbilling "github.com/dventura/autogest-api/internal/application/billing"
)

var _ appbilling.FileStore = (*LocalStore)(nil)

// LocalStore almacenamiento en disco local.
type LocalStore struct {
	root string
}

// NewLocalStore construye el almacén y crea los subdirectorios si no existen.
func NewLocalStore(publicDir string) (*LocalStore, error) {
	for _, sub := range []string{"avatars", "uploads", "docs"} {
		if err := os.MkdirAll(filepath.Join(publicDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio %s: %w", sub, err)
		}
	}
	return &LocalStore{root: publicDir}, nil
}

// SaveDocument guarda un PDF generado bajo docs/ y devuelve su ruta relativa.
func (s *LocalStore) SaveDocument(filename string, data []byte) (string, error) {
	rel := filepath.Join("docs", sanitize(filename))
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar documento: %w", err)
	}
	return rel, nil
}

// SaveAvatar guarda la imagen de perfil como avatar-<userID>.<ext>,
// reemplazando la anterior.
func (s *LocalStore) SaveAvatar(userID, originalName string, data []byte) (string, error) {
	rel := filepath.Join("avatars", "avatar-"+sanitize(userID)+ext(originalName))
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar avatar: %w", err)
	}
	return rel, nil
}

// SaveUpload guarda una subida del usuario como <field>-<timestamp>-<rand>.<ext>
// bajo uploads/ y devuelve su ruta relativa.
func (s *LocalStore) SaveUpload(field, originalName string, data []byte) (string, error) {
	name := fmt.Sprintf("%s-%d-%d%s", sanitize(field), time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext(originalName))
	rel := filepath.Join("uploads", name)
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar fichero: %w", err)
	}
	return rel, nil
}

// Remove borra un fichero por su ruta relativa. Ignora los que ya no existen.
func (s *LocalStore) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Clean(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar fichero: %w", err)
	}
	return nil
}

// sanitize deja el nombre sin separadores de ruta ni secuencias de ascenso.
func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	return name
}

func ext(originalName string) string {
	e := strings.ToLower(filepath.Ext(originalName))
	if e == "" {
		e = ".bin"
	}
	return e
}
