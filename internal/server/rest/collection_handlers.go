package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/server/catalog"
	"github.com/tnguye65/pokecollection/internal/server/models"
	"github.com/tnguye65/pokecollection/internal/server/services"
)

// cardDetails looks up catalog data for an item. Failures are counted and
// yield nil so that one bad lookup never fails the whole response. The
// catalog client logs them.
func (s *RESTServer) cardDetails(ctx context.Context, cardID string) *catalog.Card {
	card, err := s.catalog.GetCard(ctx, cardID)
	if err != nil {
		reason := "unavailable"
		if errors.Is(err, common.ErrCardNotFound) {
			reason = "not_found"
		}
		s.metrics.catalogFailures.WithLabelValues(reason).Inc()
		return nil
	}
	return card
}

func (s *RESTServer) view(ctx context.Context, item *models.CollectionItem) collectionItemView {
	return newItemView(item, s.cardDetails(ctx, item.CardID))
}

func itemIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody("invalid collection item id"))
		return 0, false
	}
	return id, true
}

func (s *RESTServer) addCard(c *gin.Context) {
	var req addCardRequest
	if !s.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	item, err := s.collection.AddCard(ctx, callerID(c), services.AddCardInput{
		CardID:    req.CardID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
		Condition: req.Condition,
		Notes:     req.Notes,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.metrics.cardsAdded.Add(float64(req.Quantity))
	s.logger.Info(ctx, "card added", "user_id", callerID(c), "card_id", item.CardID, "variant", item.Variant, "quantity", item.Quantity)
	c.JSON(http.StatusCreated, s.view(ctx, item))
}

func (s *RESTServer) listCollection(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := s.collection.ListCollection(ctx, callerID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	views := make([]collectionItemView, 0, len(items))
	for _, item := range items {
		views = append(views, s.view(ctx, item))
	}

	c.JSON(http.StatusOK, views)
}

func (s *RESTServer) updateItem(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if !s.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	item, err := s.collection.UpdateItem(ctx, callerID(c), id, services.UpdateItemInput{
		Quantity:  req.Quantity,
		Condition: req.Condition,
		Notes:     req.Notes,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.view(ctx, item))
}

func (s *RESTServer) removeItem(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}

	if err := s.collection.RemoveItem(c.Request.Context(), callerID(c), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *RESTServer) stats(c *gin.Context) {
	stats, err := s.collection.Stats(c.Request.Context(), callerID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, statsResponse{TotalCards: stats.TotalCards, UniqueCards: stats.UniqueCards})
}

func (s *RESTServer) ownsCard(c *gin.Context) {
	owned, err := s.collection.OwnsCard(c.Request.Context(), callerID(c), c.Query("cardId"), c.Query("variant"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"owned": owned})
}
