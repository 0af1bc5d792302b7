package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tnguye65/pokecollection/internal/common"
)

func (s *RESTServer) searchCards(c *gin.Context) {
	cards, err := s.catalog.SearchCards(c.Request.Context(), c.Query("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (s *RESTServer) getCard(c *gin.Context) {
	card, err := s.catalog.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		// A direct lookup of a missing card is a 404, unlike adding one.
		if errors.Is(err, common.ErrCardNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, errorBody(err.Error()))
			return
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}
