package domain

// PartyTransferOfferStatus 报价状态：随指令创建为 Intent，送达后 Pending，被裁决后整体消费删除。
type PartyTransferOfferStatus int8

const (
	TransferOfferIntent PartyTransferOfferStatus = iota
	TransferOfferPending
)

type PartyTransferOfferItem struct {
	ItemID string `json:"itemId"`
	Count  int    `json:"count"`
}

// PartyTransferOffer 是两支队伍之间的金币/兵力/物品交换报价。
// 归发起方所有；接受或拒绝后连同未转移的物品一起删除。
type PartyTransferOffer struct {
	ID            int64
	PartyID       int64
	TargetPartyID int64
	Party         *Party
	TargetParty   *Party
	Status        PartyTransferOfferStatus

	Gold   int
	Troops float64
	Items  []PartyTransferOfferItem
}
