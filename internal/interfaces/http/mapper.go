package http

import (
	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

func toInventoryResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:               it.ID,
		Identifier:       it.Identifier,
		Item:             it.ItemName,
		Description:      it.Description,
		Type:             it.Type,
		Account:          it.Account,
		SiteID:           it.SiteID,
		LocationID:       it.LocationID,
		Quantity:         it.Quantity,
		Unit:             it.Unit,
		Proof:            it.Proof,
		ProofGallons:     it.ProofGallons,
		Cost:             it.Cost,
		TotalCost:        it.TotalCost,
		Price:            it.Price,
		Status:           it.Status,
		PONumber:         it.PONumber,
		LotNumber:        it.LotNumber,
		ReceivedDate:     it.ReceivedDate,
		IsKegDepositItem: it.IsKegDepositItem,
	}
}

func toLossResponse(l *entity.InventoryLoss) dto.InventoryLossResponse {
	return dto.InventoryLossResponse{
		ID:           l.ID,
		Identifier:   l.Identifier,
		QuantityLost: l.QuantityLost,
		Reason:       l.Reason,
		Date:         l.Date,
		SiteID:       l.SiteID,
		LocationID:   l.LocationID,
		UserID:       l.UserID,
	}
}

func toPackagingResponse(p *entity.BatchPackaging) dto.PackagingResponse {
	codes := p.KegCodes
	if codes == nil {
		codes = []string{}
	}
	return dto.PackagingResponse{
		ID:          p.ID,
		BatchID:     p.BatchID,
		PackageType: p.PackageType,
		Quantity:    p.Quantity,
		Volume:      p.Volume,
		LocationID:  p.LocationID,
		SiteID:      p.SiteID,
		Date:        p.Date,
		KegCodes:    codes,
	}
}

func toKegResponse(k *entity.Keg) dto.KegResponse {
	return dto.KegResponse{
		Code:          k.Code,
		Status:        k.Status,
		ProductID:     k.ProductID,
		LocationID:    k.LocationID,
		CustomerID:    k.CustomerID,
		PackagingType: k.PackagingType,
		LastScanned:   k.LastScanned,
	}
}

func toKegTransactionResponse(t *entity.KegTransaction) dto.KegTransactionResponse {
	return dto.KegTransactionResponse{
		ID:        t.ID,
		KegCode:   t.KegCode,
		Action:    t.Action,
		ProductID: t.ProductID,
		BatchID:   t.BatchID,
		InvoiceID: t.InvoiceID,
		Date:      t.Date,
		Location:  t.Location,
	}
}
