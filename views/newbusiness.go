package views

import (
	"fmt"
	"sort"

	"github.com/freightlens/freightlens/engine"
	"github.com/freightlens/freightlens/session"
)

// ============================================================================
// NEW BUSINESS VIEWS — monthly and weekly
// ============================================================================
// Both variants run the first-occurrence detector over the UNFILTERED table:
// sidebar filters must not make an old customer look new. The month page
// uses a 30-day attribution window, the week page a 7-day window plus a
// new/existing classification on each lane's customer.
// ============================================================================

// NewBusinessMonth renders the monthly new-business page. A nil month
// defaults to the most recent month present in the data.
func NewBusinessMonth(s *session.Session, month *engine.Month) Page {
	page := Page{View: "new-business-month", Title: "New business (month)"}
	v, ok := unfilteredOrNotice(s, &page)
	if !ok {
		return page
	}

	if month == nil {
		available := engine.AvailableMonths(v)
		if len(available) == 0 {
			info(&page, "no rows carry an order-placed date")
			return page
		}
		month = &available[0]
	}
	page.Title = fmt.Sprintf("New business — %s", month)

	renderNewBusiness(&page, v, *month, false)
	return page
}

// NewBusinessWeek renders the weekly new-business page. A nil week defaults
// to the most recent ISO week present in the data.
func NewBusinessWeek(s *session.Session, week *engine.Week) Page {
	page := Page{View: "new-business-week", Title: "New business (week)"}
	v, ok := unfilteredOrNotice(s, &page)
	if !ok {
		return page
	}

	if week == nil {
		available := engine.AvailableWeeks(v)
		if len(available) == 0 {
			info(&page, "no rows carry an order-placed date")
			return page
		}
		week = &available[0]
	}
	page.Title = fmt.Sprintf("New business — %s", week)

	renderNewBusiness(&page, v, *week, true)
	return page
}

func renderNewBusiness(page *Page, v engine.View, p engine.Period, classifyCustomers bool) {
	customers := engine.NewCustomers(v, p)
	lanes := engine.NewLanes(v, p)

	var customerWeight float64
	for _, c := range customers {
		customerWeight += c.WindowWeight
	}
	windowLabel := fmt.Sprintf("first %d days", p.WindowDays())
	page.Metrics = append(page.Metrics,
		metricInt("New customers", float64(len(customers))),
		metricInt("New lanes", float64(len(lanes))),
		Metric{Label: "New customer orders (" + windowLabel + ")", Value: formatNumber(customerWeight, 1), Raw: customerWeight},
	)

	if len(customers) > 0 {
		page.Sections = append(page.Sections, Section{
			Title: "New customers",
			Table: newCustomersTable(customers, windowLabel),
		})
	} else {
		info(page, "no new customers in %s", p)
	}

	if len(lanes) > 0 {
		page.Sections = append(page.Sections, Section{
			Title: "New lanes by customer",
			Table: newLanesTable(lanes, windowLabel, classifyCustomers),
		})
	} else {
		info(page, "no new lanes in %s", p)
	}
}

func newCustomersTable(customers []engine.Entity, windowLabel string) *TableData {
	columns := []Column{
		{Key: "customer", Label: "Customer", Type: "text", Align: "left"},
		{Key: "first", Label: "First order", Type: "date", Align: "left"},
		{Key: "orders", Label: "Orders (" + windowLabel + ")", Type: "number", Align: "right"},
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.Customer,
			c.First.Format("2006-01-02"),
			formatNumber(c.WindowWeight, 1),
		})
	}
	return &TableData{Title: "New customers", Columns: columns, Rows: rows}
}

// newLanesTable groups lanes per customer, heaviest window activity first,
// with a per-customer subtotal row ahead of its lanes.
func newLanesTable(lanes []engine.Entity, windowLabel string, classify bool) *TableData {
	type laneGroup struct {
		customer string
		total    float64
		isNew    bool
		lanes    []engine.Entity
	}
	byCustomer := make(map[string]*laneGroup)
	var order []string
	for _, lane := range lanes {
		g, ok := byCustomer[lane.Customer]
		if !ok {
			g = &laneGroup{customer: lane.Customer, isNew: lane.NewCustomer}
			byCustomer[lane.Customer] = g
			order = append(order, lane.Customer)
		}
		g.total += lane.WindowWeight
		g.lanes = append(g.lanes, lane)
	}

	groups := make([]*laneGroup, 0, len(order))
	for _, customer := range order {
		g := byCustomer[customer]
		sort.SliceStable(g.lanes, func(i, j int) bool { return g.lanes[i].WindowWeight > g.lanes[j].WindowWeight })
		groups = append(groups, g)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].total > groups[j].total })

	columns := []Column{
		{Key: "customer", Label: "Customer", Type: "text", Align: "left"},
		{Key: "route", Label: "Route", Type: "text", Align: "left"},
		{Key: "first", Label: "First order", Type: "date", Align: "left"},
		{Key: "orders", Label: "Orders (" + windowLabel + ")", Type: "number", Align: "right"},
	}
	if classify {
		columns = append(columns, Column{Key: "customerStatus", Label: "Customer", Type: "text", Align: "center"})
	}

	var rows [][]string
	for _, g := range groups {
		subtotal := []string{g.customer, "", "", formatNumber(g.total, 1)}
		if classify {
			status := "existing"
			if g.isNew {
				status = "new"
			}
			subtotal = append(subtotal, status)
		}
		rows = append(rows, subtotal)
		for _, lane := range g.lanes {
			row := []string{"", lane.Route, lane.First.Format("2006-01-02"), formatNumber(lane.WindowWeight, 1)}
			if classify {
				row = append(row, "")
			}
			rows = append(rows, row)
		}
	}
	return &TableData{Title: "New lanes", Columns: columns, Rows: rows}
}
