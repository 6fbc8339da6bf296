// Package storage implementa el object store local para los archivos que
// acompañan al registro (catálogo, logo, certificaciones, ferias).
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/catamarca-comercio/registro-exportadores/pkg/config"
	"github.com/catamarca-comercio/registro-exportadores/pkg/slug"
)

// Local guarda archivos bajo un directorio base y los referencia por rutas
// relativas. La ruta relativa es lo que se persiste en la base; URL() la
// convierte en URL pública.
type Local struct {
	base    string
	baseURL string
}

func NewLocal(cfg config.StorageConfig) *Local {
	return &Local{base: cfg.BasePath, baseURL: strings.TrimRight(cfg.BaseURL, "/")}
}

// RutaCatalogo arma la ruta relativa del catálogo de una empresa:
// catalogos/YYYY/MM/catalogo-<slug>-MM-YYYY.ext
func RutaCatalogo(razonSocial, nombreArchivo string, t time.Time) string {
	ext := strings.ToLower(filepath.Ext(nombreArchivo))
	return fmt.Sprintf("catalogos/%04d/%02d/catalogo-%s-%02d-%04d%s",
		t.Year(), t.Month(), slug.De(razonSocial), t.Month(), t.Year(), ext)
}

// RutaArchivo arma la ruta relativa de cualquier otro adjunto:
// <categoria>/YYYY/MM/<categoria>-<slug>-<unix>.ext
func RutaArchivo(categoria, razonSocial, nombreArchivo string, t time.Time) string {
	ext := strings.ToLower(filepath.Ext(nombreArchivo))
	return fmt.Sprintf("%s/%04d/%02d/%s-%s-%d%s",
		categoria, t.Year(), t.Month(), categoria, slug.De(razonSocial), t.Unix(), ext)
}

// Guardar escribe el contenido en la ruta relativa indicada, creando los
// directorios intermedios. Devuelve la ruta relativa tal como se persiste.
func (l *Local) Guardar(ruta string, r io.Reader) (string, error) {
	destino := filepath.Join(l.base, filepath.FromSlash(ruta))
	if err := os.MkdirAll(filepath.Dir(destino), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de storage: %w", err)
	}

	f, err := os.Create(destino)
	if err != nil {
		return "", fmt.Errorf("crear archivo de storage: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("escribir archivo de storage: %w", err)
	}
	return ruta, nil
}

// URL devuelve la URL pública de una ruta relativa persistida. Vacío si no
// hay archivo.
func (l *Local) URL(ruta string) string {
	if ruta == "" {
		return ""
	}
	return l.baseURL + "/" + path.Clean(ruta)
}
