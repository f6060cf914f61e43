package core

// Employer is a company the console keeps contact details for.
// CreatedAt is assigned once when the employer is added.
type Employer struct {
	ID            int    `json:"id"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Industry      string `json:"industry"`
	Website       string `json:"website,omitempty"`
	Address       string `json:"address,omitempty"`
	Description   string `json:"description,omitempty"`
	Logo          string `json:"logo,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// Key returns the entity id.
func (e Employer) Key() int { return e.ID }

// NewEmployer is the input of an add.
type NewEmployer struct {
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Industry      string `json:"industry"`
	Website       string `json:"website,omitempty"`
	Address       string `json:"address,omitempty"`
	Description   string `json:"description,omitempty"`
	Logo          string `json:"logo,omitempty"`
}

// Build assigns id and creation date.
func (n NewEmployer) Build(id int, createdAt string) Employer {
	return Employer{
		ID:            id,
		CompanyName:   n.CompanyName,
		ContactPerson: n.ContactPerson,
		Email:         n.Email,
		Phone:         n.Phone,
		Industry:      n.Industry,
		Website:       n.Website,
		Address:       n.Address,
		Description:   n.Description,
		Logo:          n.Logo,
		CreatedAt:     createdAt,
	}
}

// EmployerPatch is a partial update. ID and CreatedAt cannot be patched.
type EmployerPatch struct {
	CompanyName   *string `json:"companyName,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Industry      *string `json:"industry,omitempty"`
	Website       *string `json:"website,omitempty"`
	Address       *string `json:"address,omitempty"`
	Description   *string `json:"description,omitempty"`
	Logo          *string `json:"logo,omitempty"`
}

// Apply shallow-merges the patch into e.
func (p EmployerPatch) Apply(e Employer) Employer {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.CompanyName, p.CompanyName)
	set(&e.ContactPerson, p.ContactPerson)
	set(&e.Email, p.Email)
	set(&e.Phone, p.Phone)
	set(&e.Industry, p.Industry)
	set(&e.Website, p.Website)
	set(&e.Address, p.Address)
	set(&e.Description, p.Description)
	set(&e.Logo, p.Logo)
	return e
}
