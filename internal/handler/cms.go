package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/cms"
)

type cmsEntity struct {
	Name     string   `json:"name"`
	Key      string   `json:"key"`
	Editable []string `json:"editable"`
}

// CMSSchema handles GET /api/cms/schema.
func CMSSchema(c echo.Context) error {
	return c.JSON(http.StatusOK, cms.Schema)
}

// CMSEntities handles GET /api/cms/entities: the console's tab order with
// each entity's key field and the fields it renders inputs for.
func CMSEntities(c echo.Context) error {
	names := cms.Entities()
	out := make([]cmsEntity, 0, len(names))
	for _, name := range names {
		key, _ := cms.Key(name)
		fields, _ := cms.Lookup(name)
		ent := cmsEntity{Name: name, Key: key.Name, Editable: []string{}}
		for _, f := range fields {
			if f.Editable() {
				ent.Editable = append(ent.Editable, f.Name)
			}
		}
		out = append(out, ent)
	}
	return c.JSON(http.StatusOK, out)
}

// CMSEntity handles GET /api/cms/schema/:entity.
func CMSEntity(c echo.Context) error {
	fields, ok := cms.Lookup(c.Param("entity"))
	if !ok {
		return notFound(c, "unknown entity")
	}
	return c.JSON(http.StatusOK, fields)
}
