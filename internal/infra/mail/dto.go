package mail

type LeadAlertData struct {
	ClientName      string
	ClientCompany   string
	ProductInterest string
	Quantity        int
}

type DealWonData struct {
	ClientName     string
	FinalSalePrice float64
	Salesperson    string
}

type MessageAlertData struct {
	Kind    string
	From    string
	Summary string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// SalesTeamAddress recebe todos os alertas do back-office.
	SalesTeamAddress string
}
