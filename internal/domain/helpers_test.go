package domain

import "github.com/shopspring/decimal"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debitLine(code, amount string) JournalLine {
	return JournalLine{AccountCode: code, Debit: dec(amount), Credit: decimal.Zero}
}

func creditLine(code, amount string) JournalLine {
	return JournalLine{AccountCode: code, Debit: decimal.Zero, Credit: dec(amount)}
}

func newEntry(id, date, desc string, lines ...JournalLine) JournalEntry {
	return JournalEntry{ID: id, Date: date, Description: desc, Lines: lines}
}

func testCatalog() *Catalog {
	c, err := NewCatalog([]Account{
		{Code: "1101", Name: "Caja", Type: AccountTypeAsset, Active: true},
		{Code: "1201", Name: "Equipo", Type: AccountTypeAsset, Active: true},
		{Code: "2101", Name: "Proveedores", Type: AccountTypeLiability, Active: true},
		{Code: "2102", Name: "Prestamos", Type: AccountTypeLiability, Active: true},
		{Code: "3101", Name: "Capital social", Type: AccountTypeEquity, Active: true},
		{Code: "4101", Name: "Ventas", Type: AccountTypeIncome, Active: true},
		{Code: "5101", Name: "Sueldos", Type: AccountTypeExpense, Active: true},
		{Code: "6101", Name: "Costo de ventas", Type: AccountTypeCost, Active: true},
		{Code: "1999", Name: "Cuenta cerrada", Type: AccountTypeAsset, Active: false},
	})
	if err != nil {
		panic(err)
	}
	return c
}
