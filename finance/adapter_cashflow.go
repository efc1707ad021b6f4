package finance

import (
	"sort"
	"time"

	"bizplan-backend/models"
	"bizplan-backend/utils"
)

func CashflowEntryToUI(svc *models.ServiceCashflowEntry) CashflowEntry {
	now := time.Now().UTC()
	if svc == nil {
		return CashflowEntry{
			Id:        NewID("cfe"),
			Type:      CashflowIncome,
			State:     EntryProjected,
			Date:      now,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	id := svc.Id
	if id == "" {
		id = NewID("cfe")
	}
	return CashflowEntry{
		Id:                   id,
		BusinessPlanId:       svc.BusinessPlanId,
		Type:                 ParseCashflowEntryType(svc.Type),
		State:                ParseCashflowEntryState(svc.State),
		Amount:               svc.Amount,
		Date:                 parseDateOr(svc.Date, now),
		Label:                svc.Label,
		Category:             svc.Category,
		SourceAccountId:      svc.SourceAccountId,
		DestinationAccountId: svc.DestinationAccountId,
		CreatedAt:            parseDateOr(svc.CreatedAt, now),
		UpdatedAt:            parseDateOr(svc.UpdatedAt, now),
	}
}

func CashflowEntryToService(ui *CashflowEntry) models.ServiceCashflowEntry {
	now := time.Now().UTC()
	if ui == nil {
		def := CashflowEntryToUI(nil)
		ui = &def
	}
	id := ui.Id
	if id == "" {
		id = NewID("cfe")
	}
	created := ui.CreatedAt
	if created.IsZero() {
		created = now
	}
	return models.ServiceCashflowEntry{
		Id:                   id,
		BusinessPlanId:       ui.BusinessPlanId,
		Type:                 string(ui.Type),
		State:                string(ui.State),
		Amount:               utils.Round2(ui.Amount),
		Date:                 formatDate(ui.Date),
		Label:                ui.Label,
		Category:             ui.Category,
		SourceAccountId:      ui.SourceAccountId,
		DestinationAccountId: ui.DestinationAccountId,
		CreatedAt:            formatDate(created),
		UpdatedAt:            formatDate(now),
	}
}

func BankAccountToUI(svc *models.ServiceBankAccount) BankAccount {
	now := time.Now().UTC()
	if svc == nil {
		return BankAccount{
			Id:        NewID("acc"),
			Type:      AccountChecking,
			Currency:  "EUR",
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	id := svc.Id
	if id == "" {
		id = NewID("acc")
	}
	currency := svc.Currency
	if currency == "" {
		currency = "EUR"
	}
	return BankAccount{
		Id:             id,
		BusinessPlanId: svc.BusinessPlanId,
		Name:           svc.Name,
		Type:           ParseBankAccountType(svc.Type),
		Balance:        svc.Balance,
		Currency:       currency,
		Iban:           svc.Iban,
		IsPrimary:      svc.IsPrimary,
		CreatedAt:      parseDateOr(svc.CreatedAt, now),
		UpdatedAt:      parseDateOr(svc.UpdatedAt, now),
	}
}

func BankAccountToService(ui *BankAccount) models.ServiceBankAccount {
	now := time.Now().UTC()
	if ui == nil {
		def := BankAccountToUI(nil)
		ui = &def
	}
	id := ui.Id
	if id == "" {
		id = NewID("acc")
	}
	created := ui.CreatedAt
	if created.IsZero() {
		created = now
	}
	currency := ui.Currency
	if currency == "" {
		currency = "EUR"
	}
	return models.ServiceBankAccount{
		Id:             id,
		BusinessPlanId: ui.BusinessPlanId,
		Name:           ui.Name,
		Type:           string(ui.Type),
		Balance:        utils.Round2(ui.Balance),
		Currency:       currency,
		Iban:           ui.Iban,
		IsPrimary:      ui.IsPrimary,
		CreatedAt:      formatDate(created),
		UpdatedAt:      formatDate(now),
	}
}

// signedAmount maps an entry to its effect on a running balance: income adds,
// expense and tax subtract, transfers are balance-neutral across the plan.
func signedAmount(e CashflowEntry) float64 {
	switch e.Type {
	case CashflowIncome:
		return e.Amount
	case CashflowExpense, CashflowTax:
		return -e.Amount
	default:
		return 0
	}
}

// ReplayBalances walks the entries in ascending date order (stable for equal
// dates) and returns the running-balance extremes. Cancelled entries are
// skipped. Lowest/highest are taken over the balances after each step; with
// no effective entries both equal the initial balance.
func ReplayBalances(initialBalance float64, entries []CashflowEntry) (final, lowest, highest, netChange float64) {
	ordered := make([]CashflowEntry, 0, len(entries))
	for _, e := range entries {
		if e.State == EntryCancelled {
			continue
		}
		ordered = append(ordered, e)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	balance := initialBalance
	final, lowest, highest = balance, balance, balance
	first := true
	for _, e := range ordered {
		balance += signedAmount(e)
		if first {
			lowest, highest = balance, balance
			first = false
		} else {
			if balance < lowest {
				lowest = balance
			}
			if balance > highest {
				highest = balance
			}
		}
	}
	final = utils.Round2(balance)
	lowest = utils.Round2(lowest)
	highest = utils.Round2(highest)
	netChange = utils.Round2(final - initialBalance)
	return final, lowest, highest, netChange
}

// ForecastToUI converts a persisted forecast. The derived balances on the
// input are ignored and recomputed from initialBalance plus the entries.
func ForecastToUI(svc *models.ServiceCashflowForecast) CashflowForecast {
	now := time.Now().UTC()
	var f CashflowForecast
	if svc == nil {
		f = CashflowForecast{
			Id:        NewID("fc"),
			StartDate: now,
			EndDate:   now.AddDate(0, 3, 0),
			Entries:   []CashflowEntry{},
			CreatedAt: now,
			UpdatedAt: now,
		}
	} else {
		entries := make([]CashflowEntry, 0, len(svc.Entries))
		for _, e := range svc.Entries {
			e := e
			entries = append(entries, CashflowEntryToUI(&e))
		}
		id := svc.Id
		if id == "" {
			id = NewID("fc")
		}
		f = CashflowForecast{
			Id:             id,
			BusinessPlanId: svc.BusinessPlanId,
			Name:           svc.Name,
			StartDate:      parseDateOr(svc.StartDate, now),
			EndDate:        parseDateOr(svc.EndDate, now.AddDate(0, 3, 0)),
			InitialBalance: svc.InitialBalance,
			Entries:        entries,
			CreatedAt:      parseDateOr(svc.CreatedAt, now),
			UpdatedAt:      parseDateOr(svc.UpdatedAt, now),
		}
	}
	f.FinalBalance, f.LowestBalance, f.HighestBalance, f.NetChange = ReplayBalances(f.InitialBalance, f.Entries)
	return f
}

func ForecastToService(ui *CashflowForecast) models.ServiceCashflowForecast {
	now := time.Now().UTC()
	if ui == nil {
		def := ForecastToUI(nil)
		ui = &def
	}
	entries := make([]models.ServiceCashflowEntry, 0, len(ui.Entries))
	for _, e := range ui.Entries {
		e := e
		entries = append(entries, CashflowEntryToService(&e))
	}
	id := ui.Id
	if id == "" {
		id = NewID("fc")
	}
	created := ui.CreatedAt
	if created.IsZero() {
		created = now
	}
	final, lowest, highest, net := ReplayBalances(ui.InitialBalance, ui.Entries)
	return models.ServiceCashflowForecast{
		Id:             id,
		BusinessPlanId: ui.BusinessPlanId,
		Name:           ui.Name,
		StartDate:      formatDate(ui.StartDate),
		EndDate:        formatDate(ui.EndDate),
		InitialBalance: utils.Round2(ui.InitialBalance),
		Entries:        entries,
		FinalBalance:   final,
		LowestBalance:  lowest,
		HighestBalance: highest,
		NetChange:      net,
		CreatedAt:      formatDate(created),
		UpdatedAt:      formatDate(now),
	}
}

func ScenarioToUI(svc *models.ServiceCashflowScenario) CashflowScenario {
	now := time.Now().UTC()
	var s CashflowScenario
	if svc == nil {
		s = CashflowScenario{
			Id:          NewID("sc"),
			Assumptions: map[string]string{},
			StartDate:   now,
			EndDate:     now.AddDate(0, 3, 0),
			Entries:     []CashflowEntry{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	} else {
		entries := make([]CashflowEntry, 0, len(svc.Entries))
		for _, e := range svc.Entries {
			e := e
			entries = append(entries, CashflowEntryToUI(&e))
		}
		id := svc.Id
		if id == "" {
			id = NewID("sc")
		}
		assumptions := svc.Assumptions
		if assumptions == nil {
			assumptions = map[string]string{}
		}
		s = CashflowScenario{
			Id:             id,
			BusinessPlanId: svc.BusinessPlanId,
			Name:           svc.Name,
			Assumptions:    assumptions,
			IsFavorite:     svc.IsFavorite,
			StartDate:      parseDateOr(svc.StartDate, now),
			EndDate:        parseDateOr(svc.EndDate, now.AddDate(0, 3, 0)),
			InitialBalance: svc.InitialBalance,
			Entries:        entries,
			CreatedAt:      parseDateOr(svc.CreatedAt, now),
			UpdatedAt:      parseDateOr(svc.UpdatedAt, now),
		}
	}
	s.FinalBalance, s.LowestBalance, s.HighestBalance, s.NetChange = ReplayBalances(s.InitialBalance, s.Entries)
	return s
}

func ScenarioToService(ui *CashflowScenario) models.ServiceCashflowScenario {
	now := time.Now().UTC()
	if ui == nil {
		def := ScenarioToUI(nil)
		ui = &def
	}
	entries := make([]models.ServiceCashflowEntry, 0, len(ui.Entries))
	for _, e := range ui.Entries {
		e := e
		entries = append(entries, CashflowEntryToService(&e))
	}
	id := ui.Id
	if id == "" {
		id = NewID("sc")
	}
	created := ui.CreatedAt
	if created.IsZero() {
		created = now
	}
	assumptions := ui.Assumptions
	if assumptions == nil {
		assumptions = map[string]string{}
	}
	final, lowest, highest, net := ReplayBalances(ui.InitialBalance, ui.Entries)
	return models.ServiceCashflowScenario{
		Id:             id,
		BusinessPlanId: ui.BusinessPlanId,
		Name:           ui.Name,
		Assumptions:    assumptions,
		IsFavorite:     ui.IsFavorite,
		StartDate:      formatDate(ui.StartDate),
		EndDate:        formatDate(ui.EndDate),
		InitialBalance: utils.Round2(ui.InitialBalance),
		Entries:        entries,
		FinalBalance:   final,
		LowestBalance:  lowest,
		HighestBalance: highest,
		NetChange:      net,
		CreatedAt:      formatDate(created),
		UpdatedAt:      formatDate(now),
	}
}
