package dataset

import (
	"path/filepath"

	"github.com/educacao-digital-ce/painel-indicadores/internal/models"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Cache memoriza as bases anuais por caminho de arquivo durante a vida do processo.
// Erros não são memorizados.
type Cache struct {
	store *cache.Cache
	group singleflight.Group
}

// NewCache cria um cache sem expiração
func NewCache() *Cache {
	return &Cache{
		store: cache.New(cache.NoExpiration, 0),
	}
}

// GetOrLoad retorna a base do caminho, chamando load no máximo uma vez por caminho
// mesmo com requisições concorrentes
func (c *Cache) GetOrLoad(path string, load func() (*models.YearlyDataset, error)) (*models.YearlyDataset, error) {
	key := filepath.Clean(path)

	if ds := c.Get(key); ds != nil {
		return ds, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if ds := c.Get(key); ds != nil {
			return ds, nil
		}
		ds, err := load()
		if err != nil {
			return nil, err
		}
		c.store.Set(key, ds, cache.NoExpiration)
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.YearlyDataset), nil
}

// Get busca uma base já carregada
func (c *Cache) Get(path string) *models.YearlyDataset {
	if v, ok := c.store.Get(filepath.Clean(path)); ok {
		return v.(*models.YearlyDataset)
	}
	return nil
}

// Reset descarta todas as bases carregadas
func (c *Cache) Reset() {
	c.store.Flush()
}

// Stats retorna quantas bases estão em memória
func (c *Cache) Stats() (size int) {
	return c.store.ItemCount()
}
