package cart

import "context"

// Line 购物车行，只记录商品与数量，价格一律按商品现价现算
type Line struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Cart 会话购物车，保持加入顺序
type Cart struct {
	Lines []Line `json:"lines"`
}

// FindLine 按商品查找行，返回索引，未找到为 -1
func (c *Cart) FindLine(productID uint) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveLine 按商品移除行
func (c *Cart) RemoveLine(productID uint) {
	idx := c.FindLine(productID)
	if idx < 0 {
		return
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

// IsEmpty 判断购物车是否为空
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// Store 会话购物车存储接口
// 购物车只在会话有效期内存在，不落数据库
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Clear(ctx context.Context, sessionID string) error
}
