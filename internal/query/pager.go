package query

import (
	"time"

	"github.com/sirupsen/logrus"

	"shodan_gt_report/internal/model"
)

// Pager 按页拉取搜索结果，页号从1到pages。
// 任一页出错就记录日志并停止，不重试；空页不会终止翻页。
type Pager struct {
	client   *Client
	query    string
	pages    int
	pageSize int
	delay    time.Duration
	log      *logrus.Logger

	next    int
	stopped bool
	sleep   func(time.Duration) // 测试时可替换
}

// NewPager 创建翻页器。pages最少为1，负的delay按0处理。
func NewPager(client *Client, query string, pages, pageSize int, delay time.Duration, log *logrus.Logger) *Pager {
	if pages < 1 {
		pages = 1
	}
	if delay < 0 {
		delay = 0
	}
	return &Pager{
		client:   client,
		query:    query,
		pages:    pages,
		pageSize: pageSize,
		delay:    delay,
		log:      log,
		next:     1,
		sleep:    time.Sleep,
	}
}

// Next 返回下一页的记录批次。第二个返回值为false时翻页结束。
// 页与页之间按配置的间隔休眠，最后一页之后不休眠。
func (p *Pager) Next() ([]model.HostMatch, bool) {
	if p.stopped || p.next > p.pages {
		return nil, false
	}

	// 不是第一页时先等间隔，礼貌对待远端限速
	if p.next > 1 && p.delay > 0 {
		p.sleep(p.delay)
	}

	page := p.next
	p.next++

	resp, err := p.client.Search(p.query, page, p.pageSize)
	if err != nil {
		p.log.Errorf("ERROR de Shodan en la página %d: %v", page, err)
		p.stopped = true
		return nil, false
	}

	return resp.Matches, true
}
