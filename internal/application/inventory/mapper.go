package inventory

import (
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func toProductLogResponse(l *entity.ProductLog) dto.ProductLogResponse {
	return dto.ProductLogResponse{
		ID:          l.ID,
		ReferenceID: l.ReferenceID,
		ScheduleAt:  l.ScheduleAt,
		From:        l.From,
		To:          l.To,
		ProductID:   l.ProductID,
		Quantity:    l.Quantity,
		Status:      string(l.Status),
		Responsible: l.Responsible,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toProductLogResponses(list []*entity.ProductLog) []dto.ProductLogResponse {
	out := make([]dto.ProductLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toProductLogResponse(l))
	}
	return out
}

func toProductLogWithNameResponses(list []*entity.ProductLogWithName) []dto.ProductLogWithNameResponse {
	out := make([]dto.ProductLogWithNameResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ProductLogWithNameResponse{
			ProductLogResponse: toProductLogResponse(&l.ProductLog),
			ProductName:        l.ProductName,
		})
	}
	return out
}
