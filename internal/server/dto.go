package server

import (
	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/service"
)

// Response shapes. Domain models carry internal fields (password hashes,
// storage timestamps) that must not leak, so every handler maps through
// these.

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type splitResponse struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
}

type commentResponse struct {
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

func toCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResponse{UserID: c.UserID, Text: c.Text, CreatedAt: c.CreatedAt})
	}
	return out
}

type expenseResponse struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
	Category    string            `json:"category,omitempty"`
	Date        int64             `json:"date,omitempty"`
	PaidBy      string            `json:"paid_by"`
	SplitType   string            `json:"split_type"`
	Splits      []splitResponse   `json:"splits"`
	GroupID     string            `json:"group_id,omitempty"`
	CreatedBy   string            `json:"created_by"`
	Comments    []commentResponse `json:"comments"`
	CreatedAt   int64             `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	splits := make([]splitResponse, 0, len(e.Splits))
	for _, sp := range e.Splits {
		splits = append(splits, splitResponse{UserID: sp.UserID, Amount: sp.Amount, Paid: sp.Paid})
	}
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		PaidBy:      e.PaidByUserID,
		SplitType:   string(e.SplitType),
		Splits:      splits,
		GroupID:     e.GroupID,
		CreatedBy:   e.CreatedBy,
		Comments:    toCommentResponses(e.Comments),
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenseResponses(expenses []*models.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

type settlementResponse struct {
	ID         string  `json:"id"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note,omitempty"`
	Date       int64   `json:"date,omitempty"`
	PaidBy     string  `json:"paid_by"`
	ReceivedBy string  `json:"received_by"`
	GroupID    string  `json:"group_id,omitempty"`
	CreatedBy  string  `json:"created_by"`
	CreatedAt  int64   `json:"created_at"`
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:         s.ID,
		Amount:     s.Amount,
		Note:       s.Note,
		Date:       s.Date,
		PaidBy:     s.PaidByUserID,
		ReceivedBy: s.ReceivedByUserID,
		GroupID:    s.GroupID,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt,
	}
}

func toSettlementResponses(settlements []*models.Settlement) []settlementResponse {
	out := make([]settlementResponse, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, toSettlementResponse(s))
	}
	return out
}

type groupMemberResponse struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joined_at"`
}

type groupResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	CreatedBy   string                `json:"created_by"`
	Members     []groupMemberResponse `json:"members"`
	Comments    []commentResponse     `json:"comments"`
	CreatedAt   int64                 `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	members := make([]groupMemberResponse, 0, len(g.Members))
	for _, m := range g.Members {
		members = append(members, groupMemberResponse{
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return groupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		Comments:    toCommentResponses(g.Comments),
		CreatedAt:   g.CreatedAt,
	}
}

func toGroupResponses(groups []*models.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return out
}

type memberBalanceResponse struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Net    float64 `json:"net"`
}

type debtResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type groupSummaryResponse struct {
	Group   groupResponse           `json:"group"`
	Members []memberBalanceResponse `json:"members"`
	Debts   []debtResponse          `json:"debts"`
}

func toGroupSummaryResponse(s *service.GroupSummary) groupSummaryResponse {
	members := make([]memberBalanceResponse, 0, len(s.Members))
	for _, m := range s.Members {
		members = append(members, memberBalanceResponse{UserID: m.UserID, Name: m.Name, Net: m.Net})
	}
	debts := make([]debtResponse, 0, len(s.Debts))
	for _, d := range s.Debts {
		debts = append(debts, debtResponse{From: d.From, To: d.To, Amount: d.Amount})
	}
	return groupSummaryResponse{
		Group:   toGroupResponse(s.Group),
		Members: members,
		Debts:   debts,
	}
}

type contactResponse struct {
	User    userResponse `json:"user"`
	Balance float64      `json:"balance"`
}

func toContactResponses(contacts []service.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, contactResponse{User: toUserResponse(c.User), Balance: c.Balance})
	}
	return out
}

type contactMessageResponse struct {
	SenderID  string `json:"sender_id"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

func toContactMessageResponses(messages []models.ContactMessage) []contactMessageResponse {
	out := make([]contactMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, contactMessageResponse{SenderID: m.SenderID, Text: m.Text, CreatedAt: m.CreatedAt})
	}
	return out
}

type balanceRowResponse struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type balanceOverviewResponse struct {
	YouOwe       float64              `json:"you_owe"`
	YouAreOwed   float64              `json:"you_are_owed"`
	TotalBalance float64              `json:"total_balance"`
	Owes         []balanceRowResponse `json:"owes"`
	OwedBy       []balanceRowResponse `json:"owed_by"`
}

func toBalanceOverviewResponse(b *service.BalanceOverview) balanceOverviewResponse {
	toRows := func(rows []service.BalanceRow) []balanceRowResponse {
		out := make([]balanceRowResponse, 0, len(rows))
		for _, r := range rows {
			out = append(out, balanceRowResponse{UserID: r.UserID, Name: r.Name, Amount: r.Amount})
		}
		return out
	}
	return balanceOverviewResponse{
		YouOwe:       b.YouOwe,
		YouAreOwed:   b.YouAreOwed,
		TotalBalance: b.TotalBalance,
		Owes:         toRows(b.Owes),
		OwedBy:       toRows(b.OwedBy),
	}
}

type monthTotalResponse struct {
	Month  int64   `json:"month"`
	Amount float64 `json:"amount"`
}

type categoryTotalResponse struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type spendingOverviewResponse struct {
	TotalThisYear float64                 `json:"total_this_year"`
	Monthly       []monthTotalResponse    `json:"monthly"`
	Categories    []categoryTotalResponse `json:"categories"`
}

func toSpendingOverviewResponse(s *service.SpendingOverview) spendingOverviewResponse {
	monthly := make([]monthTotalResponse, 0, len(s.Monthly))
	for _, m := range s.Monthly {
		monthly = append(monthly, monthTotalResponse(m))
	}
	categories := make([]categoryTotalResponse, 0, len(s.Categories))
	for _, c := range s.Categories {
		categories = append(categories, categoryTotalResponse(c))
	}
	return spendingOverviewResponse{
		TotalThisYear: s.TotalThisYear,
		Monthly:       monthly,
		Categories:    categories,
	}
}

type dashboardResponse struct {
	Balances balanceOverviewResponse  `json:"balances"`
	Spending spendingOverviewResponse `json:"spending"`
	Groups   []groupResponse          `json:"groups"`
}

type reminderPreferenceResponse struct {
	ID        string `json:"id"`
	ScopeType string `json:"scope_type"`
	ScopeID   string `json:"scope_id"`
	Frequency string `json:"frequency"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func toReminderPreferenceResponse(p *models.ReminderPreference) reminderPreferenceResponse {
	return reminderPreferenceResponse{
		ID:        p.ID,
		ScopeType: string(p.ScopeType),
		ScopeID:   p.ScopeID,
		Frequency: string(p.Frequency),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
