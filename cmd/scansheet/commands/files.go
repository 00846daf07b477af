package commands

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jinford/scansheet/internal/module/ingestion/domain"
)

// loadFiles は添付ファイルを並行に読み込みます。順序は引数の順のまま保たれます
func loadFiles(ctx context.Context, paths []string) ([]domain.FileBlob, error) {
	blobs := make([]domain.FileBlob, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("ファイルを読み込めません %q: %w", path, err)
			}
			blobs[i] = domain.FileBlob{
				Name:        filepath.Base(path),
				ContentType: contentTypeFor(path),
				Data:        data,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blobs, nil
}

// contentTypeFor は拡張子からMIMEタイプを推定します。
// サーバー側はPDFか否かだけを見るため、拡張子ベースで十分です。
func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
